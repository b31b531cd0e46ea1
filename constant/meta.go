// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "vidmeta"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent by the detail API client. The upstream rejects requests without a mobile agent.
	UserAgent = "Mozilla/5.0 (Android)"
)

// Build metadata, overridden with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Logo is the banner printed above the root command help.
const Logo = `        _     _                _
 __   _(_) __| |_ __ ___   ___| |_ __ _
 \ \ / / |/ _` + "`" + ` | '_ ` + "`" + ` _ \ / _ \ __/ _` + "`" + ` |
  \ V /| | (_| | | | | | |  __/ || (_| |
   \_/ |_|\__,_|_| |_| |_|\___|\__\__,_|`
