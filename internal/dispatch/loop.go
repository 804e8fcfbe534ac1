package dispatch

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/rahul/alfred/internal/observability"
)

const (
	// ExitKeyword ends the session, compared case-insensitively after trimming.
	ExitKeyword     = "exit"
	FarewellMessage = "Goodbye!"
)

// Handler runs a single turn.
type Handler interface {
	Handle(ctx context.Context, chatID, input string) Reply
}

// Presenter shows the prompt and replies to the user.
type Presenter interface {
	Prompt()
	Present(reply Reply)
}

// Loop reads utterances line by line and hands each one to the handler.
// Turns run strictly one after another.
type Loop struct {
	Handler Handler
	ChatID  string
	In      io.Reader
	Out     Presenter
	Status  *observability.Status
}

func NewLoop(h Handler, chatID string, in io.Reader, out Presenter) *Loop {
	return &Loop{Handler: h, ChatID: chatID, In: in, Out: out}
}

type line struct {
	text string
	err  error
}

// Run returns nil after the exit keyword or end of input, and the context
// error when ctx is cancelled while waiting for input.
func (l *Loop) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	lines := l.read(done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.Status.Set(observability.PhaseAwaitInput, "")
		l.Out.Prompt()

		var next line
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next, ok = <-lines:
		}
		if !ok {
			l.farewell()
			return nil
		}
		if next.err != nil {
			return next.err
		}

		input := strings.TrimSpace(next.text)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, ExitKeyword) {
			l.farewell()
			return nil
		}

		l.Out.Present(l.Handler.Handle(ctx, l.ChatID, input))
	}
}

func (l *Loop) farewell() {
	l.Status.Set(observability.PhaseExiting, "")
	l.Out.Present(Reply{Text: FarewellMessage, Tone: ToneMuted})
}

// read scans In on its own goroutine so that Run can stop on cancellation
// while a read is blocked. The channel is closed at end of input.
func (l *Loop) read(done <-chan struct{}) <-chan line {
	lines := make(chan line)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(l.In)
		for scanner.Scan() {
			select {
			case lines <- line{text: scanner.Text()}:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- line{err: err}:
			case <-done:
			}
		}
	}()
	return lines
}
