// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Metadata Repository - these keys select and configure the source of metadata records.
const (
	MetadataSource        = "metadata.source"
	MetadataCache         = "metadata.cache"
	MetadataCacheLifetime = "metadata.cache_lifetime"
	FixtureLatency        = "metadata.fixture_latency"
)

// Catalog API - the envelope REST endpoint serving {success, data, error} responses.
const (
	CatalogBaseURL = "catalog.base_url"
	CatalogTimeout = "catalog.timeout"
)

// Detail API - the third-party movie detail endpoint with fixed request headers.
const (
	DetailBaseURL        = "detail.base_url"
	DetailConnectTimeout = "detail.connect_timeout"
)

// Network - transport level toggles shared by every client.
const (
	NetworkFingerprint = "network.fingerprint"
	NetworkLogBodies   = "network.log_bodies"
	NetworkRateLimit   = "network.rate_limit"
)

// Playback - these keys configure the engine and the default stream.
const (
	PlayerEngine        = "player.engine"
	PlayerManifestURL   = "player.manifest_url"
	PlayerLicenseURL    = "player.license_url"
	PlayerSettleDelay   = "player.settle_delay"
	PlayerForceHighest  = "player.force_highest_bitrate"
	PlayerBandwidthHint = "player.bandwidth_hint"
)

// Search Interaction - these keys define the suggestion behaviour for video ID input.
const (
	SearchShowSuggestions = "search.show_suggestions"
)

// Terminal Interface - these keys tune the look of the interactive screens.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIInputPrompt = "tui.input_prompt"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
