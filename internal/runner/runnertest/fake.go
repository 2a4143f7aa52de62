// Package runnertest provides a scripted Runner for tests.
package runnertest

import (
	"context"
	"sync"

	"github.com/ziggle-dev/clanker-input/internal/runner"
)

// Response is one scripted reply from the fake.
type Response struct {
	Result runner.Result
	Err    error
	// Block makes Run wait for the context to end, simulating a user who
	// never answers.
	Block bool
}

// Fake is a Runner that replays scripted responses and records every spawn.
type Fake struct {
	mu sync.Mutex
	// Installed lists the executables LookPath finds. nil means everything.
	Installed map[string]bool
	// Responses are consumed in order; once exhausted, Default is returned.
	Responses []Response
	Default   Response
	Calls     []runner.Command
}

// New returns a Fake with every executable installed.
func New(responses ...Response) *Fake {
	return &Fake{Responses: responses}
}

// WithInstalled restricts LookPath to the named executables.
func (f *Fake) WithInstalled(names ...string) *Fake {
	f.Installed = make(map[string]bool, len(names))
	for _, n := range names {
		f.Installed[n] = true
	}
	return f
}

// Run records the command and returns the next scripted response.
func (f *Fake) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, cmd)
	resp := f.Default
	if len(f.Responses) > 0 {
		resp = f.Responses[0]
		f.Responses = f.Responses[1:]
	}
	f.mu.Unlock()

	if resp.Block {
		<-ctx.Done()
		return runner.Result{}, ctx.Err()
	}
	return resp.Result, resp.Err
}

// LookPath succeeds for installed executables.
func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Installed == nil || f.Installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", runner.ErrNotFound
}

// Spawns returns how many commands were run.
func (f *Fake) Spawns() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// Last returns the most recent command, or the zero Command.
func (f *Fake) Last() runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return runner.Command{}
	}
	return f.Calls[len(f.Calls)-1]
}

// Stdout is a shorthand for a successful response printing out.
func Stdout(out string) Response {
	return Response{Result: runner.Result{Stdout: out}}
}

// Exit is a shorthand for a response exiting with code and stderr.
func Exit(code int, stderr string) Response {
	return Response{Result: runner.Result{ExitCode: code, Stderr: stderr}}
}
