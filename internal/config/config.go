package config

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/pflag"
	"github.com/vsivsi/nodelayout"
	"github.com/vsivsi/nodelayout/internal/logger"
)

const (
	EnvPrefix       string = "NODELAYOUT_"
	ConfigDelimiter string = "."

	KeyAppName        string = "app-name"
	KeyLogLevel       string = "log-level"
	KeyWordBits       string = "word-bits"
	KeyEntryWidthBits string = "entry-width-bits"
	KeyFormat         string = "format"
	KeyStrategies     string = "strategies"
	KeyRegions        string = "regions"
	KeyIndex          string = "index"
)

// Output formats.
const (
	FormatTable   string = "table"
	FormatJSON    string = "json"
	FormatMsgpack string = "msgpack"
)

var keys = []string{
	KeyAppName, KeyLogLevel, KeyWordBits, KeyEntryWidthBits,
	KeyFormat, KeyStrategies, KeyRegions, KeyIndex,
}

// Config is the resolved configuration of the layoutreport command.
type Config struct {
	AppName    string
	LogLevel   string
	Params     nodelayout.Params
	Format     string
	Strategies []nodelayout.Strategy
	// Regions is empty when the standard regions should be used.
	Regions []nodelayout.Region
	// Index is negative unless a single node offset was asked for.
	Index int64
}

func defaults() map[string]interface{} {
	p := nodelayout.DefaultParams()
	return map[string]interface{}{
		KeyAppName:        "layoutreport",
		KeyLogLevel:       "INFO",
		KeyWordBits:       int64(p.WordBits),
		KeyEntryWidthBits: int64(p.EntryWidthBits),
		KeyFormat:         FormatTable,
		KeyStrategies:     []string{"fixed", "byte", "bit"},
		KeyRegions:        []string{},
		KeyIndex:          int64(-1),
	}
}

// Flags returns the command line flags, named after the config keys.
func Flags() *pflag.FlagSet {
	d := defaults()
	fs := pflag.NewFlagSet("layoutreport", pflag.ContinueOnError)
	fs.String(KeyAppName, d[KeyAppName].(string), "application name used in logs")
	fs.String(KeyLogLevel, d[KeyLogLevel].(string), "DEBUG, INFO, WARN, ERROR, FATAL, PANIC or DISABLED")
	fs.Int64(KeyWordBits, d[KeyWordBits].(int64), "machine word width in bits")
	fs.Int64(KeyEntryWidthBits, d[KeyEntryWidthBits].(int64), "per-node small field width S in bits")
	fs.String(KeyFormat, d[KeyFormat].(string), "output format: table, json or msgpack")
	fs.StringSlice(KeyStrategies, d[KeyStrategies].([]string), "strategies to evaluate")
	fs.StringSlice(KeyRegions, nil, "regions as name=size, e.g. L2=256KiB (default: cache levels and pages)")
	fs.Int64(KeyIndex, d[KeyIndex].(int64), "print the offsets of this node instead of the report")
	return fs
}

// envKey maps NODELAYOUT_ENTRY_WIDTH_BITS (or NODELAYOUT_ENTRYWIDTHBITS) to
// entry-width-bits. Unknown variables are dropped.
func envKey(name string) string {
	norm := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(strings.TrimPrefix(name, EnvPrefix)))
	for _, k := range keys {
		if strings.ReplaceAll(k, "-", "") == norm {
			return k
		}
	}
	return ""
}

// Load resolves the configuration from defaults, then NODELAYOUT_* environment
// variables, then command line arguments.
func Load(args []string) (*Config, error) {
	k := koanf.New(ConfigDelimiter)
	if err := k.Load(confmap.Provider(defaults(), ConfigDelimiter), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ConfigDelimiter, envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := k.Load(posflag.Provider(fs, ConfigDelimiter, k), nil); err != nil {
		return nil, fmt.Errorf("loading flags: %w", err)
	}
	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		AppName:  k.String(KeyAppName),
		LogLevel: strings.ToUpper(k.String(KeyLogLevel)),
		Format:   strings.ToLower(k.String(KeyFormat)),
		Index:    k.Int64(KeyIndex),
	}

	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	wordBits, entryWidthBits := k.Int64(KeyWordBits), k.Int64(KeyEntryWidthBits)
	if wordBits <= 0 || entryWidthBits <= 0 {
		return nil, fmt.Errorf("%s and %s must be positive, got %d and %d", KeyWordBits, KeyEntryWidthBits, wordBits, entryWidthBits)
	}
	cfg.Params = nodelayout.Params{WordBits: uint64(wordBits), EntryWidthBits: uint64(entryWidthBits)}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Format {
	case FormatTable, FormatJSON, FormatMsgpack:
	default:
		return nil, fmt.Errorf("unknown %s %q", KeyFormat, cfg.Format)
	}

	for _, name := range stringList(k, KeyStrategies) {
		s, err := nodelayout.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		cfg.Strategies = append(cfg.Strategies, s)
	}

	for _, pair := range stringList(k, KeyRegions) {
		r, err := ParseRegion(pair)
		if err != nil {
			return nil, err
		}
		cfg.Regions = append(cfg.Regions, r)
	}
	return cfg, nil
}

// stringList reads a list that may come as a slice (defaults, flags) or as a
// comma separated string (environment).
func stringList(k *koanf.Koanf, key string) []string {
	var raw []string
	if s, ok := k.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = k.Strings(key)
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseRegion parses "name=size" where size is a byte count such as 4096, 32KiB or 2MiB.
func ParseRegion(pair string) (nodelayout.Region, error) {
	name, size, ok := strings.Cut(pair, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return nodelayout.Region{}, fmt.Errorf("region %q is not name=size", pair)
	}
	bytes, err := humanize.ParseBytes(strings.TrimSpace(size))
	if err != nil {
		return nodelayout.Region{}, fmt.Errorf("region %q: %w", pair, err)
	}
	return nodelayout.RegionBytes(name, bytes), nil
}
