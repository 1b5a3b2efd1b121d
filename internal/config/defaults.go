package config

import (
	"github.com/oakwood-commons/vcrx/internal/path"
)

// Default returns the built-in configuration: a "vcr" channel tuned for
// cassette inspection and a "yaml" channel that previews whole documents.
func Default() *Config {
	mustPattern := func(text string) path.Path {
		p, err := CompilePattern(text)
		if err != nil {
			panic("config: bad built-in pattern " + text + ": " + err.Error())
		}
		return p
	}

	vcr := Channel{
		Name:         "vcr",
		GlobPatterns: []string{"**/*.yaml", "**/*.yml"},
		Enabled:      true,
		Rules: []ExtractionRule{
			{
				Pattern:      mustPattern("http_interactions[].response.body.string"),
				Formatter:    "text",
				Label:        "Response Body (Text)",
				MetadataKeys: []string{"response.status.code", "request.method", "request.uri"},
			},
			{
				Pattern:      mustPattern("http_interactions[].response.body.string"),
				Formatter:    "json",
				Label:        "Response Body (JSON)",
				MetadataKeys: []string{"response.status.code", "request.method", "request.uri"},
			},
			{
				Pattern:      mustPattern("http_interactions[].request.body"),
				Formatter:    "text",
				Label:        "Request Body",
				MetadataKeys: []string{"request.method", "request.uri"},
			},
		},
	}

	yamlCh := Channel{
		Name:         "yaml",
		GlobPatterns: []string{"**/*.yaml", "**/*.yml"},
		Enabled:      true,
		Rules: []ExtractionRule{
			{
				// Empty pattern: the whole document.
				Pattern:   mustPattern(""),
				Formatter: "yaml",
				Label:     "Full YAML",
			},
		},
	}

	return &Config{
		Channels:       []Channel{vcr, yamlCh},
		DefaultChannel: "vcr",
	}
}
