package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/agentic-research/randgen/internal/scheme"
	"github.com/agentic-research/randgen/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, list *scheme.TemplateList) *Server {
	sess, err := session.New(list)
	require.NoError(t, err)
	return New(sess, "test", nil)
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestHandleList(t *testing.T) {
	s := newServer(t, scheme.DefaultTemplateList())
	res, err := s.handleList(context.Background(), call(nil))
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, "Found 5 template(s)")
	assert.Contains(t, out, "4. Word (1 schemes): ok")
}

func TestHandleValidate(t *testing.T) {
	s := newServer(t, scheme.DefaultTemplateList())
	res, err := s.handleValidate(context.Background(), call(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	dup := scheme.NewTemplateList(scheme.NewTemplate("A"), scheme.NewTemplate("A"))
	s = newServer(t, dup)
	res, err = s.handleValidate(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "'A'")
}

func TestHandleGenerate(t *testing.T) {
	s := newServer(t, scheme.DefaultTemplateList())

	res, err := s.handleGenerate(context.Background(), call(map[string]any{"template": "Word", "count": 3, "seed": 8}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	first := text(t, res)
	assert.Len(t, strings.Split(first, "\n"), 3)

	res, err = s.handleGenerate(context.Background(), call(map[string]any{"template": "Word", "count": 3, "seed": 8}))
	require.NoError(t, err)
	assert.Equal(t, first, text(t, res))
}

func TestHandleGenerate_Errors(t *testing.T) {
	s := newServer(t, scheme.DefaultTemplateList())

	res, err := s.handleGenerate(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleGenerate(context.Background(), call(map[string]any{"template": "Nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleGenerate(context.Background(), call(map[string]any{"template": "Word", "count": -2}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	broken := scheme.NewWordScheme()
	broken.Words = nil
	s = newServer(t, scheme.NewTemplateList(scheme.NewTemplate("Broken", broken)))
	res, err = s.handleGenerate(context.Background(), call(map[string]any{"template": "Broken"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, scheme.DefaultMessages[scheme.KeyWordsEmpty], text(t, res))
}
