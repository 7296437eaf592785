// Package engine wraps an external UCI chess engine process and exposes the
// two calls the game model needs: feeding it a position and asking for the
// best move.
package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// ErrTimeout is returned when the engine does not answer within the move
// timeout. The process is left running; the caller may simply ask again.
var ErrTimeout = errors.New("engine: timed out waiting for reply")

const (
	defaultMoveTimeout = 10 * time.Second
	defaultDepth       = 10
)

// UCI drives a UCI engine binary over stdin/stdout pipes. Calls are
// serialized with a mutex since the protocol is strictly request/reply the
// way we use it.
type UCI struct {
	path        string
	depth       int
	moveTimeout time.Duration
	logger      *log.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	lines  chan string
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option tweaks engine construction.
type Option func(*UCI)

// WithDepth sets the search depth passed on "go".
func WithDepth(depth int) Option {
	return func(u *UCI) { u.depth = depth }
}

// WithMoveTimeout bounds how long BestMove waits for a reply.
func WithMoveTimeout(d time.Duration) Option {
	return func(u *UCI) { u.moveTimeout = d }
}

// WithLogger routes engine chatter to the given logger.
func WithLogger(l *log.Logger) Option {
	return func(u *UCI) { u.logger = l }
}

// New prepares a wrapper around the engine binary at path. The process is
// not launched until Start.
func New(path string, opts ...Option) *UCI {
	u := &UCI{
		path:        path,
		depth:       defaultDepth,
		moveTimeout: defaultMoveTimeout,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Start launches the engine process and performs the UCI handshake. The
// process is tied to ctx: cancelling it kills the engine.
func (u *UCI) Start(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.cmd != nil {
		return errors.New("engine: already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, u.path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("engine: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("engine: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("engine: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("engine: start %s: %w", u.path, err)
	}

	u.cmd = cmd
	u.stdin = stdin
	u.cancel = cancel
	u.lines = make(chan string, 64)

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		defer close(u.lines)
		r := bufio.NewScanner(stdout)
		for r.Scan() {
			line := r.Text()
			select {
			case u.lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := r.Err(); err != nil {
			u.logger.Printf("engine: stdout: %v", err)
		}
	}()

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		r := bufio.NewScanner(stderr)
		for r.Scan() {
			u.logger.Printf("engine stderr: %s", r.Text())
		}
	}()

	if err := u.send("uci"); err != nil {
		return err
	}
	if _, err := u.waitFor("uciok"); err != nil {
		return err
	}
	if err := u.send("isready"); err != nil {
		return err
	}
	if _, err := u.waitFor("readyok"); err != nil {
		return err
	}
	return nil
}

// SetPosition hands the engine the position to search from.
func (u *UCI) SetPosition(fen string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cmd == nil {
		return errors.New("engine: not started")
	}
	return u.send("position fen " + fen)
}

// BestMove runs a depth-limited search and returns the engine's move in long
// algebraic notation. A timeout leaves the process alive so the caller can
// retry or take the turn back.
func (u *UCI) BestMove() (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cmd == nil {
		return "", errors.New("engine: not started")
	}
	if err := u.send(fmt.Sprintf("go depth %d", u.depth)); err != nil {
		return "", err
	}
	line, err := u.waitFor("bestmove")
	if err != nil {
		return "", err
	}
	return parseBestMove(line)
}

// Close asks the engine to quit and reaps the process.
func (u *UCI) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cmd == nil {
		return nil
	}
	_ = u.send("quit")
	_ = u.stdin.Close()
	err := u.cmd.Wait()
	u.cancel()
	u.wg.Wait()
	u.cmd = nil
	return err
}

func (u *UCI) send(line string) error {
	if _, err := io.WriteString(u.stdin, line+"\n"); err != nil {
		return fmt.Errorf("engine: write %q: %w", line, err)
	}
	return nil
}

// waitFor drains engine output until a line starting with prefix arrives.
func (u *UCI) waitFor(prefix string) (string, error) {
	deadline := time.NewTimer(u.moveTimeout)
	defer deadline.Stop()
	for {
		select {
		case line, ok := <-u.lines:
			if !ok {
				return "", errors.New("engine: process closed its output")
			}
			if strings.HasPrefix(line, prefix) {
				return line, nil
			}
		case <-deadline.C:
			return "", fmt.Errorf("%w (waiting for %q)", ErrTimeout, prefix)
		}
	}
}

// parseBestMove extracts the move token from a "bestmove e2e4 ponder d7d5"
// reply.
func parseBestMove(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "bestmove" {
		return "", fmt.Errorf("engine: malformed reply %q", line)
	}
	if fields[1] == "(none)" {
		return "", errors.New("engine: no move available")
	}
	return fields[1], nil
}
