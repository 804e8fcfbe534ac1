package gateway

import (
	"context"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rahul/alfred/internal/dispatch"
	"github.com/rahul/alfred/internal/observability"
)

const (
	PromptText  = ">> "
	ReplyPrefix = " : "
)

var _ Messenger = (*ConsoleGateway)(nil)

// ConsoleGateway runs the chat on a terminal: it prints the prompt, reads one
// line per turn and prints each reply colored by its tone.
type ConsoleGateway struct {
	Handler dispatch.Handler
	ChatID  string
	Status  *observability.Status

	in     io.Reader
	out    io.Writer
	prompt *color.Color
	tones  map[dispatch.Tone]*color.Color

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewConsoleGateway(h dispatch.Handler, chatID string, in io.Reader, out io.Writer, colored bool) *ConsoleGateway {
	c := &ConsoleGateway{
		Handler: h,
		ChatID:  chatID,
		in:      in,
		out:     out,
		prompt:  color.New(color.FgCyan, color.Bold),
		tones: map[dispatch.Tone]*color.Color{
			dispatch.ToneInfo:    color.New(color.FgWhite),
			dispatch.ToneSuccess: color.New(color.FgGreen),
			dispatch.ToneWarning: color.New(color.FgYellow),
			dispatch.ToneFailure: color.New(color.FgRed),
			dispatch.ToneMuted:   color.New(color.Faint),
		},
	}
	if !colored {
		c.prompt.DisableColor()
		for _, style := range c.tones {
			style.DisableColor()
		}
	}
	return c
}

// Start blocks until the user exits, input ends, ctx is cancelled or Stop is
// called.
func (c *ConsoleGateway) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	loop := dispatch.NewLoop(c.Handler, c.ChatID, c.in, c)
	loop.Status = c.Status
	return loop.Run(ctx)
}

// Prompt implements dispatch.Presenter.
func (c *ConsoleGateway) Prompt() {
	c.prompt.Fprint(c.out, PromptText)
}

// Present implements dispatch.Presenter.
func (c *ConsoleGateway) Present(reply dispatch.Reply) {
	style, ok := c.tones[reply.Tone]
	if !ok {
		style = c.tones[dispatch.ToneInfo]
	}
	style.Fprintf(c.out, "%s%s\n", ReplyPrefix, reply.Text)
}

// Send prints text as an informational reply. The console has a single chat,
// so chatID is ignored.
func (c *ConsoleGateway) Send(chatID string, text string) error {
	c.Present(dispatch.Reply{Text: text, Tone: dispatch.ToneInfo})
	return nil
}

func (c *ConsoleGateway) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}
