package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziggle-dev/clanker-input/internal/ask"
	"github.com/ziggle-dev/clanker-input/internal/config"
	"github.com/ziggle-dev/clanker-input/internal/metrics"
	"github.com/ziggle-dev/clanker-input/internal/request"
	"github.com/ziggle-dev/clanker-input/internal/runner/runnertest"
)

func callTool(t *testing.T, s *Server, args map[string]any) (*mcp.CallToolResult, map[string]any) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = ToolName
	req.Params.Arguments = args

	result, err := s.handleUserInput(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &body))
	return result, body
}

// zenityServer serves a real input service backed by a fake zenity.
func zenityServer(t *testing.T, fake *runnertest.Fake) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Mechanisms = map[string][]string{"linux": {"zenity"}}
	svc, err := ask.Build(ask.Options{Config: cfg, Runner: fake, Platform: "linux"})
	require.NoError(t, err)
	return New(svc, "test", nil, nil)
}

func TestUserInput_Single(t *testing.T) {
	fake := runnertest.New(runnertest.Stdout("Ana\n"))
	result, body := callTool(t, zenityServer(t, fake), map[string]any{"prompt": "What is your name?"})

	assert.False(t, result.IsError)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Ana", body["output"])
	assert.Equal(t, map[string]any{"input": "Ana"}, body["data"])
}

func TestUserInput_Chain(t *testing.T) {
	fake := runnertest.New(runnertest.Stdout("Ana\n"), runnertest.Stdout("a@x.com\n"))
	_, body := callTool(t, zenityServer(t, fake), map[string]any{
		"prompt": "ignored",
		"questions": []any{
			map[string]any{"prompt": "What is your name?"},
			map[string]any{"prompt": "Enter your email:"},
		},
	})

	assert.Equal(t, "name: Ana\nemail: a@x.com", body["output"])
	data := body["data"].(map[string]any)
	assert.Equal(t, map[string]any{"name": "Ana", "email": "a@x.com"}, data["answers"])
	assert.EqualValues(t, 2, data["questionCount"])
	assert.Equal(t, 2, fake.Spawns())
}

func TestUserInput_CancelIsNotAnError(t *testing.T) {
	fake := runnertest.New(runnertest.Exit(1, ""))
	result, body := callTool(t, zenityServer(t, fake), map[string]any{"prompt": "Q?"})

	assert.False(t, result.IsError)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "Input cancelled")
}

func TestUserInput_BadArguments(t *testing.T) {
	fake := runnertest.New()
	s := zenityServer(t, fake)

	tests := []struct {
		name   string
		args   map[string]any
		errMsg string
	}{
		{"nothing", map[string]any{}, "either prompt or questions is required"},
		{"dropdown without options", map[string]any{"prompt": "Pick", "type": "dropdown"}, "at least one option"},
		{"undecodable", map[string]any{"questions": "not a list"}, "Input failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, body := callTool(t, s, tt.args)
			assert.True(t, result.IsError)
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"], tt.errMsg)
		})
	}
	assert.Equal(t, 0, fake.Spawns())
}

// gate counts how many Ask calls overlap.
type gate struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (g *gate) Ask(ctx context.Context, req request.Request) request.Response {
	n := g.inFlight.Add(1)
	for {
		seen := g.maxSeen.Load()
		if n <= seen || g.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	g.inFlight.Add(-1)
	return request.Response{Success: true, Output: req.Prompt, Status: request.StatusAnswered}
}

func TestUserInput_Serialized(t *testing.T) {
	g := &gate{}
	s := New(g, "test", nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := mcp.CallToolRequest{}
			req.Params.Arguments = map[string]any{"prompt": "Q"}
			_, err := s.handleUserInput(context.Background(), req)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, g.maxSeen.Load(), "one dialog at a time")
}

func TestToolListing(t *testing.T) {
	s := New(&gate{}, "test", nil, nil)

	msg := s.mcpServer.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	b, err := json.Marshal(msg)
	require.NoError(t, err)

	assert.Contains(t, string(b), `"name":"user_input"`)
	assert.Contains(t, string(b), `"timeout_seconds"`)
	assert.Contains(t, string(b), `"dropdown"`)
}

func TestHandler_MetricsAndHealth(t *testing.T) {
	m := metrics.New()
	m.ObserveChain("complete")
	s := New(&gate{}, "test", nil, m)
	srv := httptest.NewServer(s.Handler("http://example.test"))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `clanker_input_chains_total{result="complete"} 1`)
}

func TestServeSSE_StopsWithContext(t *testing.T) {
	s := New(&gate{}, "test", nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ServeSSE(ctx, "127.0.0.1:0", "http://127.0.0.1") }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
