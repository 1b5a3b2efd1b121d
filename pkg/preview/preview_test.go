package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/vcrx/internal/config"
	"github.com/oakwood-commons/vcrx/internal/document"
	"github.com/oakwood-commons/vcrx/internal/path"
)

const cassette = `
http_interactions:
- request:
    method: GET
    uri: https://example.com/widgets
    body: ''
  response:
    status:
      code: 200
    body:
      string: 'first\nbody'
- request:
    method: POST
    uri: https://example.com/widgets
    body: '{"name":"new"}'
  response:
    status:
      code: 201
    body:
      string: created
recorded_with: VCR 6.1.0
`

func mustDoc(t *testing.T, data string) *document.Node {
	t.Helper()
	doc, err := document.Decode([]byte(data))
	require.NoError(t, err)
	return doc
}

func TestPreviewKey(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	res, err := e.PreviewKey(doc, "http_interactions[0].response.body.string", "vcr")
	require.NoError(t, err)
	// First rule wins: text before json, and the text formatter decodes the
	// recorded escape sequence.
	assert.Equal(t, "text", res.Formatter)
	assert.Equal(t, "Response Body (Text)", res.Label)
	assert.Equal(t, "first\nbody", res.Content)
	assert.Equal(t, "http_interactions[0].response.body.string", res.Path.String())
}

func TestPreviewKeyMetadata(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	res, err := e.PreviewKey(doc, "http_interactions[1].response.body.string", "vcr")
	require.NoError(t, err)
	require.Len(t, res.Metadata, 3)
	assert.Equal(t, Metadatum{Key: "response.status.code", Value: "201"}, res.Metadata[0])
	assert.Equal(t, Metadatum{Key: "request.method", Value: "POST"}, res.Metadata[1])
	assert.Equal(t, Metadatum{Key: "request.uri", Value: "https://example.com/widgets"}, res.Metadata[2])
}

func TestPreviewKeyWildcardTakesFirstMatch(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	res, err := e.PreviewKey(doc, "http_interactions[].response.body.string", "vcr")
	require.NoError(t, err)
	assert.Equal(t, "http_interactions[0].response.body.string", res.Path.String())
	assert.Equal(t, "first\nbody", res.Content)
}

func TestPreviewKeyPathNotFound(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	_, err := e.PreviewKey(doc, "http_interactions[9].response", "vcr")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestPreviewKeyNoMatchingRule(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	_, err := e.PreviewKey(doc, "recorded_with", "vcr")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMatchingRule)
}

func TestPreviewKeyUnknownChannel(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	_, err := e.PreviewKey(doc, "recorded_with", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestPreviewKeyParseError(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	_, err := e.PreviewKey(doc, "a..b", "vcr")
	assert.Error(t, err)
}

func TestPreviewKeyAll(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	results, err := e.PreviewKeyAll(doc, "http_interactions[].response.body.string", "vcr")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "http_interactions[0].response.body.string", results[0].Path.String())
	assert.Equal(t, "http_interactions[1].response.body.string", results[1].Path.String())
	assert.Equal(t, "created", results[1].Content)
	assert.Equal(t, Metadatum{Key: "response.status.code", Value: "200"}, results[0].Metadata[0])
	assert.Equal(t, Metadatum{Key: "response.status.code", Value: "201"}, results[1].Metadata[0])
}

func TestPreviewKeyAllNoRuleMatches(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	_, err := e.PreviewKeyAll(doc, "http_interactions[].request.method", "vcr")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMatchingRule)
}

func TestPreviewFile(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	results, err := e.PreviewFile(doc, "vcr")
	require.NoError(t, err)
	// Two response bodies plus two request bodies, enumeration order.
	require.Len(t, results, 4)
	assert.Equal(t, "http_interactions[0].request.body", results[0].Path.String())
	assert.Equal(t, "Request Body", results[0].Label)
	assert.Equal(t, "http_interactions[0].response.body.string", results[1].Path.String())
	assert.Equal(t, "http_interactions[1].request.body", results[2].Path.String())
	assert.Equal(t, "http_interactions[1].response.body.string", results[3].Path.String())
}

func TestPreviewFileWholeDocumentChannel(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	results, err := e.PreviewFile(doc, "yaml")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Path)
	assert.Equal(t, "Full YAML", results[0].Label)
	assert.Contains(t, results[0].Content, "http_interactions:")
	assert.Contains(t, results[0].Content, "recorded_with:")
}

func TestPreviewableKeys(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	keys, err := e.PreviewableKeys(doc, "vcr")
	require.NoError(t, err)
	require.Len(t, keys, 4)
	assert.Equal(t, "http_interactions[0].request.body", keys[0].String())
	assert.Equal(t, "http_interactions[1].response.body.string", keys[3].String())
}

func TestListKeys(t *testing.T) {
	e := New()
	doc := mustDoc(t, `{"a": {"b": 1}}`)

	keys := e.ListKeys(doc)
	require.Len(t, keys, 3)
	assert.Equal(t, "", keys[0].String())
	assert.Equal(t, "a", keys[1].String())
	assert.Equal(t, "a.b", keys[2].String())
}

func TestMetadataRelativeToDocumentRootWithoutWildcard(t *testing.T) {
	cfg := &config.Config{
		DefaultChannel: "flat",
		Channels: []config.Channel{{
			Name:    "flat",
			Enabled: true,
			Rules: []config.ExtractionRule{{
				Pattern:      mustPattern(t, "payload"),
				Formatter:    "text",
				MetadataKeys: []string{"version", "missing.key", "payload"},
			}},
		}},
	}
	e := New(WithConfig(cfg))
	doc := mustDoc(t, "version: 2\npayload: hello")

	res, err := e.PreviewKey(doc, "payload", "")
	require.NoError(t, err)
	// The missing key is skipped, the scalar hits survive in key order.
	require.Len(t, res.Metadata, 2)
	assert.Equal(t, Metadatum{Key: "version", Value: "2"}, res.Metadata[0])
	assert.Equal(t, Metadatum{Key: "payload", Value: "hello"}, res.Metadata[1])
}

func TestEngineDefaultChannelFallback(t *testing.T) {
	e := New()
	doc := mustDoc(t, cassette)

	res, err := e.PreviewKey(doc, "http_interactions[0].response.body.string", "")
	require.NoError(t, err)
	assert.Equal(t, "text", res.Formatter)
}

func mustPattern(t *testing.T, text string) path.Path {
	t.Helper()
	p, err := config.CompilePattern(text)
	require.NoError(t, err)
	return p
}
