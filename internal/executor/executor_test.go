package executor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziggle-dev/clanker-input/internal/dispatch"
	"github.com/ziggle-dev/clanker-input/internal/mechanism"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
	"github.com/ziggle-dev/clanker-input/internal/runner/runnertest"
)

// zenityOnly wires a real dispatcher over a fake runner with only zenity
// installed.
func zenityOnly(t *testing.T, fake *runnertest.Fake) *dispatch.Dispatcher {
	t.Helper()
	mechs := []mechanism.Mechanism{mechanism.NewZenity(fake.WithInstalled("zenity"))}
	return dispatch.New(dispatch.PlatformLinux, mechs)
}

type recordingPresenter struct {
	got prompt.Request
	out prompt.Outcome
}

func (p *recordingPresenter) Present(ctx context.Context, req prompt.Request) prompt.Outcome {
	p.got = req
	return p.out
}

func TestExecute_ValidationBeforeSpawn(t *testing.T) {
	tests := []struct {
		name string
		req  prompt.Request
	}{
		{"empty text", prompt.Request{Kind: prompt.KindText}},
		{"blank text", prompt.Request{Text: "  \n", Kind: prompt.KindText}},
		{"dropdown without options", prompt.Request{Text: "Pick", Kind: prompt.KindDropdown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := runnertest.New(runnertest.Stdout("never\n"))
			e := New(Config{}, zenityOnly(t, fake), nil)

			out := e.Execute(context.Background(), tt.req)

			assert.True(t, out.Invalid())
			assert.ErrorIs(t, out.Err, prompt.ErrValidation)
			assert.Equal(t, 0, fake.Spawns())
		})
	}
}

func TestExecute_AnswersThroughDispatcher(t *testing.T) {
	fake := runnertest.New(runnertest.Stdout("Ana\n"))
	e := New(Config{}, zenityOnly(t, fake), nil)

	out := e.Execute(context.Background(), prompt.Request{Text: "What is your name?", Kind: prompt.KindText})

	require.Equal(t, prompt.Answered, out.Status)
	assert.Equal(t, "Ana", out.Value)
	assert.Equal(t, 1, fake.Spawns())
	assert.Contains(t, fake.Last().Args, prompt.DefaultTitle)
}

func TestExecute_Title(t *testing.T) {
	p := &recordingPresenter{out: prompt.Answer("x")}

	New(Config{}, p, nil).Execute(context.Background(), prompt.Request{Text: "Q"})
	assert.Equal(t, prompt.DefaultTitle, p.got.Title)

	New(Config{Title: "Setup"}, p, nil).Execute(context.Background(), prompt.Request{Text: "Q"})
	assert.Equal(t, "Setup", p.got.Title)

	New(Config{Title: "Setup"}, p, nil).Execute(context.Background(), prompt.Request{Text: "Q", Title: "Mine"})
	assert.Equal(t, "Mine", p.got.Title)
}

func TestExecute_TimeoutIsCancel(t *testing.T) {
	fake := runnertest.New(runnertest.Response{Block: true})
	e := New(Config{Timeout: 20 * time.Millisecond}, zenityOnly(t, fake), nil)

	start := time.Now()
	out := e.Execute(context.Background(), prompt.Request{Text: "Anyone there?"})

	assert.Equal(t, prompt.Cancelled, out.Status)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWithTimeout_OverridesConfig(t *testing.T) {
	fake := runnertest.New(runnertest.Response{Block: true})
	e := New(Config{Timeout: time.Hour}, zenityOnly(t, fake), nil)

	assert.Same(t, e, e.WithTimeout(0))

	out := e.WithTimeout(10*time.Millisecond).Execute(context.Background(), prompt.Request{Text: "Anyone there?"})
	assert.Equal(t, prompt.Cancelled, out.Status)
	assert.Equal(t, time.Hour, e.config.Timeout, "the original executor is untouched")
}

func TestExecute_ParentCancelIsCancel(t *testing.T) {
	p := &recordingPresenter{out: prompt.Failf(prompt.ErrMechanism, "killed")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := New(Config{}, p, nil).Execute(ctx, prompt.Request{Text: "Q"})
	assert.Equal(t, prompt.Cancelled, out.Status)
}

func TestExecute_FailurePassesThrough(t *testing.T) {
	fake := runnertest.New(runnertest.Exit(3, "bad things"))
	e := New(Config{}, zenityOnly(t, fake), nil)

	out := e.Execute(context.Background(), prompt.Request{Text: "Q"})

	assert.Equal(t, prompt.Failed, out.Status)
	assert.ErrorIs(t, out.Err, prompt.ErrMechanism)
	assert.Contains(t, out.Err.Error(), "bad things")
}
