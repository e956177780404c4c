package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/wellwise/dialogue"
	"github.com/poiesic/wellwise/session"
)

// Handler runs one dialogue turn. *dialogue.Controller implements it.
type Handler interface {
	Handle(ctx context.Context, st session.State, input string) (session.State, *dialogue.Reply, error)
}

// MaxLineBytes caps how much of one input line is handed to the handler.
// Anything beyond it is read and discarded.
const MaxLineBytes = 1 << 20

// REPL holds the state of exactly one conversation and runs it over a
// line-oriented reader and a renderer.
type REPL struct {
	handler  Handler
	in       *bufio.Reader
	maxLine  int
	renderer *Renderer
	state    session.State
	logger   *slog.Logger
}

// NewREPL creates a REPL reading lines from in.
func NewREPL(handler Handler, in io.Reader, renderer *Renderer, logger *slog.Logger) *REPL {
	if logger == nil {
		logger = slog.Default()
	}
	return &REPL{
		handler:  handler,
		in:       bufio.NewReader(in),
		maxLine:  MaxLineBytes,
		renderer: renderer,
		state:    session.NewState(),
		logger:   logger.With("component", "console"),
	}
}

// Run reads and answers lines until the conversation terminates, the input
// ends or ctx is done. Ending by exit or end of input is not an error.
func (l *REPL) Run(ctx context.Context) error {
	l.renderer.Welcome()
	for {
		l.renderer.Prompt()
		line, err := l.readLine()
		if errors.Is(err, io.EOF) {
			l.logger.Debug("input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		next, reply, err := l.handler.Handle(ctx, l.state, line)
		if err != nil {
			return err
		}
		l.state = next
		l.renderer.Reply(reply)
		if reply.Terminated {
			return nil
		}
	}
}

// readLine returns the next line without its terminator, cut to maxLine
// bytes on a rune boundary.
func (l *REPL) readLine() (string, error) {
	var buf []byte
	total := 0
	for {
		chunk, isPrefix, err := l.in.ReadLine()
		if err != nil {
			return "", err
		}
		total += len(chunk)
		if room := l.maxLine - len(buf); room > 0 {
			buf = append(buf, chunk[:min(len(chunk), room)]...)
		}
		if !isPrefix {
			break
		}
	}
	if total > len(buf) {
		l.logger.Warn("input line truncated", "bytes", total, "limit", l.maxLine)
		return strings.ToValidUTF8(string(buf), ""), nil
	}
	return string(buf), nil
}

// State returns the conversation state after the last turn.
func (l *REPL) State() session.State {
	return l.state.Clone()
}
