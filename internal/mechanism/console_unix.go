//go:build !windows

package mechanism

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ziggle-dev/clanker-input/internal/prompt"
)

// OpenConsole opens the controlling terminal.
func OpenConsole() (*Console, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: no controlling terminal: %v", prompt.ErrUnavailable, err)
	}
	return &Console{In: f, Out: f, lines: bufio.NewReader(f), fd: int(f.Fd()), closer: f.Close}, nil
}
