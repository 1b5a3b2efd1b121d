// Package config defines the channel and extraction-rule configuration the
// preview engine consumes. A Config is built once (from the built-in
// defaults or a TOML file) and treated as immutable, so independent workers
// can share it across documents without locking.
package config

import (
	"github.com/oakwood-commons/vcrx/internal/path"
)

// ExtractionRule describes how to render one class of matched paths.
type ExtractionRule struct {
	// Pattern may contain wildcard segments; it is matched against the
	// concrete paths enumerated from a document.
	Pattern path.Path
	// Formatter identifies the renderer (text, json, yaml, toml, html).
	Formatter string
	// Label is the display title for previews produced by this rule.
	Label string
	// MetadataKeys are path expressions resolved relative to the enclosing
	// record of a match; scalar hits become preview metadata.
	MetadataKeys []string
}

// Channel is a named, ordered list of extraction rules applied to a class of
// documents. Rule order matters: the first matching rule wins.
type Channel struct {
	Name         string
	GlobPatterns []string
	Rules        []ExtractionRule
	Enabled      bool
}

// Config is the already-merged configuration passed by reference into every
// engine call. Channels keep declaration order.
type Config struct {
	Channels       []Channel
	DefaultChannel string
}

// Channel returns the named channel, or the default channel when name is
// empty. Disabled channels are reported as not found.
func (c *Config) Channel(name string) (*Channel, bool) {
	if c == nil {
		return nil, false
	}
	if name == "" {
		name = c.DefaultChannel
	}
	if name == "" {
		return nil, false
	}
	for i := range c.Channels {
		if c.Channels[i].Name == name {
			if !c.Channels[i].Enabled {
				return nil, false
			}
			return &c.Channels[i], true
		}
	}
	return nil, false
}

// MatchRule returns the first rule whose pattern matches the concrete path.
// Declaration order is the only tiebreaker; specificity never wins over an
// earlier rule.
func MatchRule(rules []ExtractionRule, concrete path.Path) (*ExtractionRule, bool) {
	for i := range rules {
		if rules[i].Pattern.Matches(concrete) {
			return &rules[i], true
		}
	}
	return nil, false
}
