package mcp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingMiddleware_ToolCall(t *testing.T) {
	logs := captureLogs(t)

	handler := LoggingMiddleware()(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		return &sdkmcp.CallToolResult{IsError: true}, nil
	})
	req := &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "infer_schema"}}

	_, err := handler(context.Background(), "tools/call", req)
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "method=tools/call")
	assert.Contains(t, out, "tool=infer_schema")
	assert.Contains(t, out, "tool_error=true")
}

func TestLoggingMiddleware_ProtocolCall(t *testing.T) {
	logs := captureLogs(t)

	handler := LoggingMiddleware()(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		return nil, nil
	})

	_, err := handler(context.Background(), "tools/list", &sdkmcp.ListToolsRequest{})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "level=DEBUG")
	assert.NotContains(t, logs.String(), "tool=")
}

func TestLoggingMiddleware_Failure(t *testing.T) {
	logs := captureLogs(t)

	handler := LoggingMiddleware()(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		return nil, errors.New("boom")
	})

	_, err := handler(context.Background(), "resources/read", &sdkmcp.ReadResourceRequest{})
	require.EqualError(t, err, "boom")
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "error=boom")
}
