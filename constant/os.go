package constant

// Platform identifiers for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)

// Mime types understood by the playback engines.
const (
	MimeDASH = "application/dash+xml"
	MimeHLS  = "application/x-mpegURL"
)
