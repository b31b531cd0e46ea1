package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/key"
	"github.com/vidmeta/vidmeta/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	// Duration fields hold a time.ParseDuration string.
	Duration bool
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes the current value next to the default one.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	if f.Duration {
		return "duration"
	}

	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Parse converts command line values into a value of the field's type.
func (f *Field) Parse(values []string) (any, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no value for %s", f.Key)
	}

	raw := values[0]
	if f.Duration {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid duration value %q: use a unit, e.g. 15s or 500ms", raw)
		}
		if d < 0 {
			return nil, fmt.Errorf("duration must not be negative: %s", raw)
		}
		return d.String(), nil
	}

	switch f.Value.(type) {
	case string:
		return raw, nil
	case int:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw)
		}
		return parsed, nil
	case bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw)
		}
		return parsed, nil
	case []string:
		return values, nil
	default:
		return nil, fmt.Errorf("unsupported type of %s", f.Key)
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	registerDuration := func(k string, v time.Duration, desc string) {
		register(k, v.String(), desc)
		field := Default[k]
		field.Duration = true
		Default[k] = field
	}

	register(key.MetadataSource, "fixture", "Metadata repository to query.\nAvailable options are: fixture, catalog, mxplayer")
	register(key.MetadataCache, false, "Cache fetched metadata records on disk")
	registerDuration(key.MetadataCacheLifetime, 24 * time.Hour, "How long a cached metadata record stays valid")
	registerDuration(key.FixtureLatency, time.Second, "Artificial latency of the fixture repository")
	register(key.CatalogBaseURL, "https://api.example.com/", "Base URL of the catalog metadata API")
	registerDuration(key.CatalogTimeout, 15 * time.Second, "Connect and read timeout of the catalog metadata API")
	register(key.DetailBaseURL, "https://api.mxplayer.in/", "Base URL of the movie detail API")
	registerDuration(key.DetailConnectTimeout, 5 * time.Second, "Connect timeout of the movie detail API")
	register(key.NetworkFingerprint, false, "Use a browser TLS fingerprint for API requests")
	register(key.NetworkLogBodies, false, "Log full request and response bodies at debug level")
	register(key.NetworkRateLimit, 0, "Maximum metadata API requests per second.\n0 means unlimited")
	register(key.PlayerEngine, "probe", "Playback engine to use.\nAvailable options are: probe, mpv")
	register(key.PlayerManifestURL, "https://bitmovin-a.akamaihd.net/content/art-of-motion_drm/mpds/11331.mpd", "Manifest loaded by the player screen")
	register(key.PlayerLicenseURL, "https://cwip-shaka-proxy.appspot.com/no_auth", "Widevine license server of the default manifest.\nLeave empty for clear content")
	registerDuration(key.PlayerSettleDelay, 2 * time.Second, "Time to wait for track information after preparing the engine")
	register(key.PlayerForceHighest, true, "Prefer the highest bitrate within the resolution cap regardless of bandwidth")
	register(key.PlayerBandwidthHint, 0, "Estimated bandwidth in bits per second used for adaptive selection.\n0 means unknown")
	register(key.SearchShowSuggestions, true, "Suggest previously fetched video IDs")
	register(key.TUIItemSpacing, 1, "Spacing between list items")
	register(key.TUIInputPrompt, "> ", "Prompt of the video ID input")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"purple":   style.Fg(style.Mauve),
	"blue":     style.Fg(style.Blue),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(style.Green)(b)
			}
			return style.Fg(style.Red)(b)
		case string:
			return style.Fg(style.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
