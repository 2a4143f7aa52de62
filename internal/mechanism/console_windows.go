//go:build windows

package mechanism

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/ziggle-dev/clanker-input/internal/prompt"
)

// OpenConsole opens the attached console through CONIN$ and CONOUT$.
func OpenConsole() (*Console, error) {
	in, err := os.OpenFile("CONIN$", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: no console attached: %v", prompt.ErrUnavailable, err)
	}
	out, err := os.OpenFile("CONOUT$", os.O_RDWR, 0)
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("%w: no console attached: %v", prompt.ErrUnavailable, err)
	}
	return &Console{
		In:    in,
		Out:   out,
		lines: bufio.NewReader(in),
		fd:    int(in.Fd()),
		closer: func() error {
			return errors.Join(in.Close(), out.Close())
		},
	}, nil
}
