package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/vcrx/internal/path"
)

// TOML wire form. Matches the on-disk layout used by vcr-tui config files:
//
//	default_channel = "vcr"
//
//	[channels.vcr]
//	glob_patterns = ["**/*.yaml"]
//
//	[[channels.vcr.extraction_rules]]
//	path = "http_interactions[].response.body.string"
//	formatter = "text"
type fileConfig struct {
	Root           bool                   `toml:"root,omitempty"`
	DefaultChannel string                 `toml:"default_channel,omitempty"`
	Channels       map[string]fileChannel `toml:"channels,omitempty"`
}

type fileChannel struct {
	GlobPatterns    []string   `toml:"glob_patterns,omitempty"`
	ExtractionRules []fileRule `toml:"extraction_rules,omitempty"`
	Enabled         *bool      `toml:"enabled,omitempty"`
}

type fileRule struct {
	Path         string   `toml:"path"`
	Formatter    string   `toml:"formatter"`
	Label        string   `toml:"label,omitempty"`
	MetadataKeys []string `toml:"metadata_keys,omitempty"`
}

// ParseTOML decodes a TOML config document and compiles every rule pattern.
// A malformed pattern is a configuration error and fails the whole parse;
// rules are the user's contract and silently dropping one hides real bugs.
func ParseTOML(data []byte) (*Config, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{DefaultChannel: fc.DefaultChannel}

	// TOML tables decode into an unordered map; sort channel names so two
	// loads of the same file always produce the same Config.
	names := make([]string, 0, len(fc.Channels))
	for name := range fc.Channels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fch := fc.Channels[name]
		ch := Channel{
			Name:         name,
			GlobPatterns: fch.GlobPatterns,
			Enabled:      fch.Enabled == nil || *fch.Enabled,
		}
		for _, fr := range fch.ExtractionRules {
			pattern, err := CompilePattern(fr.Path)
			if err != nil {
				return nil, fmt.Errorf("channel %q rule %q: %w", name, fr.Path, err)
			}
			ch.Rules = append(ch.Rules, ExtractionRule{
				Pattern:      pattern,
				Formatter:    fr.Formatter,
				Label:        fr.Label,
				MetadataKeys: fr.MetadataKeys,
			})
		}
		cfg.Channels = append(cfg.Channels, ch)
	}

	if cfg.DefaultChannel == "" && len(cfg.Channels) > 0 {
		cfg.DefaultChannel = cfg.Channels[0].Name
	}
	return cfg, nil
}

// CompilePattern parses a rule pattern expression. Legacy vcr-tui configs
// write jq-style patterns with a leading dot ("." is the whole document);
// one leading dot is stripped for compatibility before parsing.
func CompilePattern(text string) (path.Path, error) {
	text = strings.TrimPrefix(text, ".")
	return path.Parse(text)
}
