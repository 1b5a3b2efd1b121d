// Package preview composes the path parser, navigator, rule matcher, and
// formatter pipeline into the public cassette-preview operations. An Engine
// holds only immutable configuration and a logger, so one instance can serve
// independent documents concurrently.
package preview

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/vcrx/internal/config"
	"github.com/oakwood-commons/vcrx/internal/document"
	"github.com/oakwood-commons/vcrx/internal/formatter"
	"github.com/oakwood-commons/vcrx/internal/navigator"
	"github.com/oakwood-commons/vcrx/internal/path"
)

// Preview errors. These are expected, recoverable conditions: the query
// legitimately has no answer. Callers branch with errors.Is.
var (
	ErrPathNotFound    = errors.New("path not found in document")
	ErrNoMatchingRule  = errors.New("no extraction rule matches path")
	ErrChannelNotFound = errors.New("channel not found or disabled")
)

// Metadatum is one extracted metadata entry. Entries keep the rule's
// MetadataKeys order.
type Metadatum struct {
	Key   string
	Value string
}

// Result is a rendered preview of one concrete path.
type Result struct {
	// Path is the concrete (wildcard-free) path of the previewed value.
	Path path.Path
	// Content is the formatted text ready for display.
	Content string
	// Formatter and Label come from the matched extraction rule.
	Formatter string
	Label     string
	Metadata  []Metadatum
}

// Engine evaluates preview operations against loaded documents.
type Engine struct {
	cfg *config.Config
	log logr.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithConfig sets the channel configuration. The config must not be mutated
// while the engine is in use.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLogger sets the logger used for per-result diagnostics.
func WithLogger(log logr.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine. Without options it uses the built-in default
// channels and discards logs.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg: config.Default(),
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config exposes the engine's channel configuration (read-only by contract).
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// ListKeys returns every addressable path in the document, in document
// order, starting with the root.
func (e *Engine) ListKeys(doc *document.Node) []path.Path {
	return navigator.Enumerate(doc)
}

// PreviewKey previews the value addressed by pathText using the channel's
// extraction rules. Wildcard-bearing paths resolve to their first match in
// document order; use PreviewKeyAll to render every match. Parse errors,
// ErrPathNotFound, ErrNoMatchingRule, and formatter errors are all surfaced.
func (e *Engine) PreviewKey(doc *document.Node, pathText, channel string) (*Result, error) {
	ch, ok := e.cfg.Channel(channel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrChannelNotFound, channel)
	}
	p, err := path.Parse(pathText)
	if err != nil {
		return nil, err
	}
	resolved, found := navigator.First(doc, p)
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, pathText)
	}
	return e.renderMatch(doc, ch, resolved)
}

// PreviewKeyAll is PreviewKey for callers that want every wildcard match:
// one Result per resolved value, in document order. Matches without a rule
// are skipped; a formatter failure skips that single match and continues.
func (e *Engine) PreviewKeyAll(doc *document.Node, pathText, channel string) ([]Result, error) {
	ch, ok := e.cfg.Channel(channel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrChannelNotFound, channel)
	}
	p, err := path.Parse(pathText)
	if err != nil {
		return nil, err
	}
	resolved := navigator.Resolve(doc, p)
	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, pathText)
	}

	var out []Result
	matchedAny := false
	for _, rv := range resolved {
		rule, ok := config.MatchRule(ch.Rules, rv.Path)
		if !ok {
			continue
		}
		matchedAny = true
		res, err := e.render(doc, rule, rv)
		if err != nil {
			e.log.V(1).Info("skipping match", "path", rv.Path.String(), "reason", err.Error())
			continue
		}
		out = append(out, *res)
	}
	if !matchedAny {
		return nil, fmt.Errorf("%w: %q", ErrNoMatchingRule, pathText)
	}
	return out, nil
}

// PreviewFile previews every enumerable path that has a matching rule, in
// enumeration order. A formatter failure on one path is logged and skipped
// so the rest of the file still renders.
func (e *Engine) PreviewFile(doc *document.Node, channel string) ([]Result, error) {
	ch, ok := e.cfg.Channel(channel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrChannelNotFound, channel)
	}

	var out []Result
	for _, concrete := range navigator.Enumerate(doc) {
		rule, ok := config.MatchRule(ch.Rules, concrete)
		if !ok {
			continue
		}
		rv, found := navigator.First(doc, concrete)
		if !found {
			continue // enumeration and resolution disagree only on a mutated tree
		}
		res, err := e.render(doc, rule, rv)
		if err != nil {
			e.log.V(1).Info("skipping path", "path", concrete.String(), "reason", err.Error())
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

// PreviewableKeys returns the enumerated paths that have a matching rule,
// without rendering them. Useful for building navigation lists.
func (e *Engine) PreviewableKeys(doc *document.Node, channel string) ([]path.Path, error) {
	ch, ok := e.cfg.Channel(channel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrChannelNotFound, channel)
	}
	var out []path.Path
	for _, concrete := range navigator.Enumerate(doc) {
		if _, ok := config.MatchRule(ch.Rules, concrete); ok {
			out = append(out, concrete)
		}
	}
	return out, nil
}

// renderMatch matches a rule for an already-resolved value and renders it.
func (e *Engine) renderMatch(doc *document.Node, ch *config.Channel, rv navigator.Resolved) (*Result, error) {
	rule, ok := config.MatchRule(ch.Rules, rv.Path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatchingRule, rv.Path.String())
	}
	return e.render(doc, rule, rv)
}

func (e *Engine) render(doc *document.Node, rule *config.ExtractionRule, rv navigator.Resolved) (*Result, error) {
	content, err := formatter.Format(rv.Node, rule.Formatter)
	if err != nil {
		return nil, err
	}
	return &Result{
		Path:      rv.Path,
		Content:   content,
		Formatter: rule.Formatter,
		Label:     rule.Label,
		Metadata:  e.metadata(doc, rule, rv.Path),
	}, nil
}

// metadata resolves the rule's metadata keys against the enclosing record of
// the match: the node at the concrete prefix ending at the last segment the
// pattern's wildcard produced. Patterns without wildcards resolve against
// the document root. Misses, containers, and malformed keys are silently
// skipped; metadata never fails a preview.
func (e *Engine) metadata(doc *document.Node, rule *config.ExtractionRule, concrete path.Path) []Metadatum {
	if len(rule.MetadataKeys) == 0 {
		return nil
	}

	record := doc
	if idx := lastWildcard(rule.Pattern); idx >= 0 && idx < len(concrete) {
		if rv, found := navigator.First(doc, concrete[:idx+1]); found {
			record = rv.Node
		}
	}

	var out []Metadatum
	for _, key := range rule.MetadataKeys {
		kp, err := config.CompilePattern(key)
		if err != nil {
			e.log.V(1).Info("skipping metadata key", "key", key, "reason", err.Error())
			continue
		}
		rv, found := navigator.First(record, kp)
		if !found || rv.Node.Kind != document.KindScalar {
			continue
		}
		out = append(out, Metadatum{Key: key, Value: rv.Node.ScalarText()})
	}
	return out
}

func lastWildcard(pattern path.Path) int {
	for i := len(pattern) - 1; i >= 0; i-- {
		if _, ok := pattern[i].(path.Wildcard); ok {
			return i
		}
	}
	return -1
}
