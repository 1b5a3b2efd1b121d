package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/vcrx/internal/document"
	"github.com/oakwood-commons/vcrx/internal/path"
)

func mustDecode(t *testing.T, data string) *document.Node {
	t.Helper()
	n, err := document.Decode([]byte(data))
	require.NoError(t, err)
	return n
}

func mustPath(t *testing.T, expr string) path.Path {
	t.Helper()
	p, err := path.Parse(expr)
	require.NoError(t, err)
	return p
}

const cassette = `
interactions:
- response:
    body:
      string: hello
- response:
    body:
      string: world
`

func TestResolveConcrete(t *testing.T) {
	root := mustDecode(t, cassette)

	results := Resolve(root, mustPath(t, "interactions[1].response.body.string"))
	require.Len(t, results, 1)
	assert.Equal(t, "world", results[0].Node.ScalarText())
	assert.Equal(t, "interactions[1].response.body.string", results[0].Path.String())
}

func TestResolveWildcardFanOut(t *testing.T) {
	root := mustDecode(t, cassette)

	results := Resolve(root, mustPath(t, "interactions[].response.body.string"))
	require.Len(t, results, 2)
	assert.Equal(t, "interactions[0].response.body.string", results[0].Path.String())
	assert.Equal(t, "hello", results[0].Node.ScalarText())
	assert.Equal(t, "interactions[1].response.body.string", results[1].Path.String())
	assert.Equal(t, "world", results[1].Node.ScalarText())
}

func TestResolveSingleMatch(t *testing.T) {
	root := mustDecode(t, `{"interactions": [{"response": {"body": {"string": "hello"}}}]}`)

	results := Resolve(root, mustPath(t, "interactions[].response.body.string"))
	require.Len(t, results, 1)
	assert.Equal(t, "interactions[0].response.body.string", results[0].Path.String())
	assert.Equal(t, "hello", results[0].Node.ScalarText())
	assert.False(t, results[0].Path.HasWildcard())
}

func TestResolveWildcardOverMapping(t *testing.T) {
	root := mustDecode(t, `
headers:
  Content-Type: application/json
  Server: nginx
`)
	results := Resolve(root, mustPath(t, "headers[]"))
	require.Len(t, results, 2)
	assert.Equal(t, "headers.Content-Type", results[0].Path.String())
	assert.Equal(t, "application/json", results[0].Node.ScalarText())
	assert.Equal(t, "headers.Server", results[1].Path.String())
}

func TestResolveSoftMisses(t *testing.T) {
	root := mustDecode(t, cassette)

	tests := []struct {
		name string
		expr string
	}{
		{"absent key", "interactions[0].request"},
		{"index out of bounds", "interactions[9].response"},
		{"index into mapping", "interactions[0].response[0]"},
		{"field into sequence", "interactions.response"},
		{"field into scalar", "interactions[0].response.body.string.more"},
		{"wildcard over scalar", "interactions[0].response.body.string[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Resolve(root, mustPath(t, tt.expr)))
		})
	}
}

func TestResolveRootPath(t *testing.T) {
	root := mustDecode(t, cassette)
	results := Resolve(root, nil)
	require.Len(t, results, 1)
	assert.Same(t, root, results[0].Node)
	assert.Empty(t, results[0].Path)
}

func TestResolveNilRoot(t *testing.T) {
	assert.Nil(t, Resolve(nil, mustPath(t, "a")))
}

func TestResolveNestedWildcards(t *testing.T) {
	root := mustDecode(t, `
groups:
- members: [a, b]
- members: [c]
`)
	results := Resolve(root, mustPath(t, "groups[].members[]"))
	require.Len(t, results, 3)
	assert.Equal(t, "groups[0].members[0]", results[0].Path.String())
	assert.Equal(t, "a", results[0].Node.ScalarText())
	assert.Equal(t, "groups[0].members[1]", results[1].Path.String())
	assert.Equal(t, "groups[1].members[0]", results[2].Path.String())
	assert.Equal(t, "c", results[2].Node.ScalarText())
}

func TestFirst(t *testing.T) {
	root := mustDecode(t, cassette)

	r, ok := First(root, mustPath(t, "interactions[].response.body.string"))
	require.True(t, ok)
	assert.Equal(t, "hello", r.Node.ScalarText())

	_, ok = First(root, mustPath(t, "nope"))
	assert.False(t, ok)
}
