// Package dispatch runs the conversation: one utterance in, one reply out.
//
// Each turn asks the agent for a directive, validates it, runs the matching
// tool and formats the result. A search that matches todos is followed
// immediately by deleting every match (the cascade), and only the outcome of
// the deletes is reported.
package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rahul/alfred/internal/agent"
	"github.com/rahul/alfred/internal/directive"
	"github.com/rahul/alfred/internal/format"
	"github.com/rahul/alfred/internal/governance"
	"github.com/rahul/alfred/internal/observability"
	"github.com/rahul/alfred/internal/tools"
	"golang.org/x/sync/errgroup"
)

const (
	TroubleMessage          = "I had trouble processing your request. Please try again."
	ParseFailureMessage     = "Could not parse response"
	IssueMessage            = "I encountered an issue. Please try again."
	BulkDeletedMessage      = "✅ Tasks marked as completed!"
	BulkDeleteFailedMessage = "❌ Failed to update tasks"
	DeniedPrefix            = "⛔ "
)

// Tone tells a front-end how to style a reply.
type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneWarning
	ToneFailure
	ToneMuted
)

// Reply is the single message presented for a turn.
type Reply struct {
	Text string
	Tone Tone
}

// Registry is the tool registry as seen by the dispatcher.
type Registry interface {
	directive.Catalog
	Invoke(ctx context.Context, action directive.Action) (tools.Result, error)
}

// Transcript stores the presented exchange.
type Transcript interface {
	AddMessage(ctx context.Context, chatID string, role string, content string) error
}

// Dispatcher handles one turn at a time, even when several gateways share
// it. Policy, Transcript and Status are optional.
type Dispatcher struct {
	Agent      agent.Agent
	Tools      Registry
	Policy     governance.PolicyEngine
	Transcript Transcript
	Logger     *observability.Logger
	Status     *observability.Status

	mu sync.Mutex
}

func NewDispatcher(a agent.Agent, registry Registry, policy governance.PolicyEngine, transcript Transcript, logger *observability.Logger) *Dispatcher {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Dispatcher{
		Agent:      a,
		Tools:      registry,
		Policy:     policy,
		Transcript: transcript,
		Logger:     logger,
	}
}

type turn struct {
	chatID string
	id     string
	input  string
}

// Handle runs one turn and always returns exactly one reply. Failures are
// logged and turned into fixed messages; they never escape the turn.
func (d *Dispatcher) Handle(ctx context.Context, chatID, input string) Reply {
	d.mu.Lock()
	defer d.mu.Unlock()

	t := turn{chatID: chatID, id: uuid.NewString(), input: input}
	d.Logger.LogTurn(t.chatID, t.id, input)

	reply := d.run(ctx, t)

	d.Status.Set(observability.PhasePresenting, input)
	d.record(ctx, t, reply)
	return reply
}

func (d *Dispatcher) run(ctx context.Context, t turn) Reply {
	d.Status.Set(observability.PhaseGenerating, t.input)
	start := time.Now()
	resp, err := d.Agent.Generate(ctx, agent.UserTurn(t.input))
	if err != nil {
		d.Logger.LogError(t.chatID, t.id, "agent call failed", err)
		return Reply{Text: TroubleMessage, Tone: ToneWarning}
	}
	if resp == nil || len(resp.Steps) == 0 {
		d.Logger.LogWarn(t.chatID, t.id, "agent returned no steps", nil)
		return Reply{Text: TroubleMessage, Tone: ToneWarning}
	}
	raw := resp.Steps[0].Text
	d.Logger.LogLLM(t.chatID, t.id, t.input, raw, time.Since(start))

	d.Status.Set(observability.PhaseInterpreting, t.input)
	dir, err := directive.Interpret(raw, d.Tools)
	if err != nil {
		d.Logger.LogWarn(t.chatID, t.id, "could not interpret agent response", err)
		return Reply{Text: ParseFailureMessage, Tone: ToneWarning}
	}

	d.Status.Set(observability.PhaseExecuting, t.input)
	reply, err := d.execute(ctx, t, dir)
	if err != nil {
		d.Logger.LogError(t.chatID, t.id, "action failed", err)
		return Reply{Text: IssueMessage, Tone: ToneWarning}
	}
	return reply
}

func (d *Dispatcher) execute(ctx context.Context, t turn, dir directive.Directive) (reply Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while executing: %v", r)
		}
	}()

	switch v := dir.(type) {
	case directive.Output:
		d.Logger.LogDirective(t.chatID, t.id, string(v.Kind()), v.Message)
		return Reply{Text: v.Message, Tone: ToneInfo}, nil

	case directive.Action:
		d.Logger.LogDirective(t.chatID, t.id, string(v.Kind()), string(v.Name))
		if denied, ok := d.check(ctx, t, v, 0); !ok {
			return denied, nil
		}
		result, err := d.invoke(ctx, t, v)
		if err != nil {
			return Reply{}, err
		}

		display := format.Format(result, v)
		if v.Name == directive.SearchTodo {
			switch c := display.(type) {
			case format.DeleteCandidate:
				return d.cascadeOne(ctx, t, c.ID)
			case format.DeleteCandidates:
				return d.cascadeAll(ctx, t, c.IDs())
			}
		}
		if msg, ok := display.(format.Message); ok {
			return Reply{Text: string(msg), Tone: toneFor(result)}, nil
		}
		return Reply{Text: format.UnknownActionMessage, Tone: ToneWarning}, nil
	}

	return Reply{}, fmt.Errorf("unsupported directive %T", dir)
}

// check asks the policy engine about an action; cascade is the size of the
// search-triggered delete it belongs to. The returned reply is only
// meaningful when ok is false.
func (d *Dispatcher) check(ctx context.Context, t turn, action directive.Action, cascade int) (Reply, bool) {
	if d.Policy == nil {
		return Reply{}, true
	}
	res, err := d.Policy.Evaluate(ctx, governance.Request{
		Action:  action,
		ChatID:  t.chatID,
		Cascade: cascade,
	})
	if err != nil {
		d.Logger.LogError(t.chatID, t.id, "policy evaluation failed", err)
		return Reply{Text: IssueMessage, Tone: ToneWarning}, false
	}
	d.Logger.LogPolicy(t.chatID, t.id, string(action.Name), string(res.Effect), res.Reason)
	if !res.Allowed() {
		return Reply{Text: DeniedPrefix + res.Reason, Tone: ToneWarning}, false
	}
	return Reply{}, true
}

func (d *Dispatcher) invoke(ctx context.Context, t turn, action directive.Action) (result tools.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", action.Name, r)
		}
	}()

	d.Logger.LogToolCall(t.chatID, t.id, string(action.Name), action.Input)
	start := time.Now()
	result, err = d.Tools.Invoke(ctx, action)
	if err != nil {
		return nil, err
	}
	d.Logger.LogToolResult(t.chatID, t.id, string(action.Name), result, time.Since(start))
	return result, nil
}

func deleteAction(id int64) directive.Action {
	return directive.Action{Name: directive.DeleteTodoByID, Input: strconv.FormatInt(id, 10)}
}

// cascadeOne deletes the only search match and reports the delete alone.
func (d *Dispatcher) cascadeOne(ctx context.Context, t turn, id int64) (Reply, error) {
	action := deleteAction(id)
	if denied, ok := d.check(ctx, t, action, 1); !ok {
		return denied, nil
	}
	result, err := d.invoke(ctx, t, action)
	if err != nil {
		return Reply{}, err
	}
	deleted, _ := result.(tools.Deleted)
	d.Logger.LogCascade(t.chatID, t.id, []int64{id}, deleted.OK)

	msg, _ := format.Format(result, action).(format.Message)
	return Reply{Text: string(msg), Tone: toneFor(result)}, nil
}

// cascadeAll deletes every search match concurrently. The reply is a success
// only when every delete removed its row; nothing is rolled back otherwise.
func (d *Dispatcher) cascadeAll(ctx context.Context, t turn, ids []int64) (Reply, error) {
	for _, id := range ids {
		if denied, ok := d.check(ctx, t, deleteAction(id), len(ids)); !ok {
			return denied, nil
		}
	}

	removed := make([]bool, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			result, err := d.invoke(gctx, t, deleteAction(id))
			if err != nil {
				return err
			}
			deleted, ok := result.(tools.Deleted)
			removed[i] = ok && deleted.OK
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Reply{}, fmt.Errorf("cascade delete: %w", err)
	}

	all := true
	for _, ok := range removed {
		all = all && ok
	}
	d.Logger.LogCascade(t.chatID, t.id, ids, all)

	if all {
		return Reply{Text: BulkDeletedMessage, Tone: ToneSuccess}, nil
	}
	return Reply{Text: BulkDeleteFailedMessage, Tone: ToneFailure}, nil
}

func toneFor(result tools.Result) Tone {
	if r, ok := result.(tools.Deleted); ok {
		if r.OK {
			return ToneSuccess
		}
		return ToneFailure
	}
	return ToneInfo
}

func (d *Dispatcher) record(ctx context.Context, t turn, reply Reply) {
	if d.Transcript == nil {
		return
	}
	if err := d.Transcript.AddMessage(ctx, t.chatID, "human", t.input); err != nil {
		d.Logger.LogWarn(t.chatID, t.id, "failed to record message", err)
		return
	}
	if err := d.Transcript.AddMessage(ctx, t.chatID, "ai", reply.Text); err != nil {
		d.Logger.LogWarn(t.chatID, t.id, "failed to record reply", err)
	}
}
