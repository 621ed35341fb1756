package pyenv

import (
	"context"
	"errors"
	"strings"

	"git.home.luguber.info/inful/pagestrap/internal/exec"
)

// stubRunner implements exec.CommandRunner for testing.
type stubRunner struct {
	// responses maps "name|arg1,arg2|dir" to a result
	responses map[string]exec.CmdResult
	onPath    map[string]string
	calls     []stubCall
	// afterRun is invoked after each call, e.g. to simulate an installer.
	afterRun func(name string)
}

type stubCall struct {
	Name   string
	Args   []string
	Dir    string
	Attach bool
}

func newStubRunner() *stubRunner {
	return &stubRunner{responses: map[string]exec.CmdResult{}, onPath: map[string]string{}}
}

func (s *stubRunner) On(name string, args []string, dir string, result exec.CmdResult) {
	s.responses[name+"|"+strings.Join(args, ",")+"|"+dir] = result
}

func (s *stubRunner) Run(_ context.Context, name string, args []string, opts exec.RunOpts) (exec.CmdResult, error) {
	s.calls = append(s.calls, stubCall{Name: name, Args: args, Dir: opts.Dir, Attach: opts.Attach})
	if s.afterRun != nil {
		defer s.afterRun(name)
	}
	if res, ok := s.responses[name+"|"+strings.Join(args, ",")+"|"+opts.Dir]; ok {
		return res, nil
	}
	return exec.CmdResult{ExitCode: 127, Stderr: "command not found"}, nil
}

func (s *stubRunner) LookPath(name string) (string, error) {
	if p, ok := s.onPath[name]; ok {
		return p, nil
	}
	return "", errors.New("executable file not found in $PATH")
}
