package ask

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziggle-dev/clanker-input/internal/config"
	"github.com/ziggle-dev/clanker-input/internal/logging"
	"github.com/ziggle-dev/clanker-input/internal/mechanism"
	"github.com/ziggle-dev/clanker-input/internal/request"
	"github.com/ziggle-dev/clanker-input/internal/runner/runnertest"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// zenityService builds a Linux service that only uses zenity.
func zenityService(t *testing.T, fake *runnertest.Fake, log *logging.Logger) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.Mechanisms = map[string][]string{"linux": {"zenity"}}
	return linuxService(t, cfg, fake, log)
}

func linuxService(t *testing.T, cfg config.Config, fake *runnertest.Fake, log *logging.Logger) *Service {
	t.Helper()
	s, err := Build(Options{
		Config:   cfg,
		Log:      log,
		Runner:   fake.WithInstalled("zenity"),
		Console:  mechanism.StaticConsole(mechanism.NewConsole(strings.NewReader(""), &bytes.Buffer{})),
		Platform: "linux",
	})
	require.NoError(t, err)
	return s
}

func asJSON(t *testing.T, r request.Response) map[string]any {
	t.Helper()
	b, err := r.JSON()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestAsk_Single(t *testing.T) {
	fake := runnertest.New(runnertest.Stdout("Ana\n"))
	s := zenityService(t, fake, nil)

	resp := s.Ask(context.Background(), request.Request{Question: request.Question{Prompt: "What is your name?"}})

	assert.True(t, resp.Success)
	assert.Equal(t, "Ana", resp.Output)
	assert.Equal(t, request.StatusAnswered, resp.Status)
	assert.Equal(t, map[string]any{"input": "Ana"}, resp.Data)
}

func TestAsk_SinglePasswordIsMasked(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fake := runnertest.New(runnertest.Stdout("hunter2\n"))
	s := zenityService(t, fake, logging.NewWithCore(core))

	resp := s.Ask(context.Background(), request.Request{Question: request.Question{Prompt: "Password", Password: true}})

	assert.True(t, resp.Success)
	assert.Equal(t, "********", resp.Output)
	assert.Equal(t, "hunter2", resp.Data["input"], "the caller still gets the value")
	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			assert.NotContains(t, f.String, "hunter2")
		}
		assert.NotContains(t, entry.Message, "hunter2")
	}
}

func TestAsk_SingleCancelled(t *testing.T) {
	fake := runnertest.New(runnertest.Exit(1, ""))
	resp := zenityService(t, fake, nil).Ask(context.Background(), request.Request{Question: request.Question{Prompt: "Q?"}})

	assert.False(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Error, "Input cancelled"))
	assert.Equal(t, request.StatusCancelled, resp.Status)
}

func TestAsk_SingleFailed(t *testing.T) {
	fake := runnertest.New(runnertest.Exit(9, "no display"))
	resp := zenityService(t, fake, nil).Ask(context.Background(), request.Request{Question: request.Question{Prompt: "Q?"}})

	assert.False(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Error, "Input failed"))
	assert.Contains(t, resp.Error, "no display")
	assert.Equal(t, request.StatusFailed, resp.Status)
}

func TestAsk_ValidationSpawnsNothing(t *testing.T) {
	fake := runnertest.New()
	resp := zenityService(t, fake, nil).Ask(context.Background(), request.Request{
		Question: request.Question{Prompt: "Pick", Type: "dropdown"},
	})

	assert.Equal(t, request.StatusFailed, resp.Status)
	assert.Contains(t, resp.Error, "at least one option")
	assert.Equal(t, 0, fake.Spawns())
}

func TestAsk_Chain(t *testing.T) {
	fake := runnertest.New(runnertest.Stdout("Ana\n"), runnertest.Stdout("a@x.com\n"))
	resp := zenityService(t, fake, nil).Ask(context.Background(), request.Request{
		Questions: []request.Question{{Prompt: "What is your name?"}, {Prompt: "Enter your email:"}},
	})

	require.True(t, resp.Success)
	assert.Equal(t, "name: Ana\nemail: a@x.com", resp.Output)

	b, err := resp.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"answers": {
      "name": "Ana",
      "email": "a@x.com"
    }`)
	assert.EqualValues(t, 2, asJSON(t, resp)["data"].(map[string]any)["questionCount"])
}

func TestAsk_ChainThroughTerminal(t *testing.T) {
	fake := runnertest.New().WithInstalled()
	s, err := Build(Options{
		Config:   config.Default(),
		Runner:   fake,
		Console:  mechanism.StaticConsole(mechanism.NewConsole(strings.NewReader("Ana\na@x.com\n"), &bytes.Buffer{})),
		Platform: "linux",
	})
	require.NoError(t, err)

	resp := s.Ask(context.Background(), request.Request{
		Questions: []request.Question{{Prompt: "What is your name?"}, {Prompt: "Enter your email:"}},
	})

	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, "name: Ana\nemail: a@x.com", resp.Output)
	assert.Equal(t, 0, fake.Spawns())
}

func TestAsk_ChainCancelled(t *testing.T) {
	fake := runnertest.New(runnertest.Stdout("Ana\n"), runnertest.Exit(1, ""))
	resp := zenityService(t, fake, nil).Ask(context.Background(), request.Request{
		Questions: []request.Question{{Prompt: "What is your name?"}, {Prompt: "Enter your email:"}, {Prompt: "Choose your editor"}},
	})

	assert.False(t, resp.Success)
	assert.Equal(t, "Input cancelled at question 2 of 3", resp.Error)
	data := asJSON(t, resp)["data"].(map[string]any)
	assert.Equal(t, true, data["cancelled"])
	assert.EqualValues(t, 1, data["stoppedAt"])
	assert.EqualValues(t, 1, data["answeredQuestions"])
	assert.Equal(t, map[string]any{"name": "Ana"}, data["partialAnswers"])
	assert.Equal(t, 2, fake.Spawns())
}

func TestAsk_ChainFailedKeepsPartial(t *testing.T) {
	fake := runnertest.New(runnertest.Stdout("Ana\n"), runnertest.Exit(3, "crashed"))
	resp := zenityService(t, fake, nil).Ask(context.Background(), request.Request{
		Questions: []request.Question{{Prompt: "What is your name?"}, {Prompt: "Enter your email:"}},
	})

	assert.Equal(t, request.StatusFailed, resp.Status)
	assert.True(t, strings.HasPrefix(resp.Error, "Input failed: question 2 of 2"))
	assert.EqualValues(t, 1, resp.Data["failedAt"])
	assert.EqualValues(t, 1, resp.Data["answeredQuestions"])
}

func TestAsk_ChainPasswordMaskedInOutput(t *testing.T) {
	fake := runnertest.New(runnertest.Stdout("ana\n"), runnertest.Stdout("hunter2\n"))
	resp := zenityService(t, fake, nil).Ask(context.Background(), request.Request{
		Questions: []request.Question{{Prompt: "Enter your username"}, {Prompt: "Enter your password", Password: true}},
	})

	assert.Equal(t, "username: ana\npassword: ********", resp.Output)
	b, err := resp.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(b), "hunter2", "data carries the real answer")
}

func TestAsk_TimeoutIsCancellation(t *testing.T) {
	fake := runnertest.New(runnertest.Response{Block: true})
	resp := zenityService(t, fake, nil).Ask(context.Background(), request.Request{
		Question:       request.Question{Prompt: "Anyone?"},
		TimeoutSeconds: 0.02,
	})

	assert.Equal(t, request.StatusCancelled, resp.Status)
}

func TestAsk_ChainTimeoutIsPartialCancel(t *testing.T) {
	fake := runnertest.New(runnertest.Stdout("Ana\n"), runnertest.Response{Block: true})
	start := time.Now()
	resp := zenityService(t, fake, nil).Ask(context.Background(), request.Request{
		Questions:      []request.Question{{Prompt: "What is your name?"}, {Prompt: "Enter your email:"}},
		TimeoutSeconds: 0.02,
	})

	assert.Equal(t, request.StatusCancelled, resp.Status)
	assert.Equal(t, 1, resp.Data["stoppedAt"])
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestPlan(t *testing.T) {
	fake := runnertest.New()
	s := linuxService(t, config.Default(), fake, nil)

	plans, err := s.Plan(request.Request{Questions: []request.Question{{Prompt: "A?"}, {Prompt: "B?"}}})
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "zenity", plans[0].Mechanism)
	assert.Contains(t, plans[1].Command, `"Question 2 of 2"`)
	assert.Equal(t, []string{"kdialog", "terminal"}, plans[0].Fallback)
	assert.Equal(t, 0, fake.Spawns())

	_, err = s.Plan(request.Request{})
	assert.Error(t, err)

	_, err = New(nil, nil, nil, nil).Plan(request.Request{Question: request.Question{Prompt: "Q"}})
	assert.Error(t, err)
}

func TestBuild_ConfigOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Mechanisms = map[string][]string{"linux": {"kdialog"}}

	s, err := Build(Options{Config: cfg, Runner: runnertest.New(), Platform: "linux"})
	require.NoError(t, err)
	plans, err := s.Plan(request.Request{Question: request.Question{Prompt: "Q"}})
	require.NoError(t, err)
	assert.Equal(t, "kdialog", plans[0].Mechanism)
	assert.Empty(t, plans[0].Fallback)

	cfg.Override = []string{"nonsense"}
	_, err = Build(Options{Config: cfg, Runner: runnertest.New(), Platform: "linux"})
	assert.Error(t, err)
}
