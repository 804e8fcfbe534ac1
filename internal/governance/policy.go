// Package governance decides whether a todo action may run.
package governance

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rahul/alfred/internal/directive"
)

// Effect defines the result of a policy evaluation.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Request is an action about to run against the todo store. Cascade is the
// number of todos a search-triggered delete removes in one go, zero for an
// action the agent asked for directly.
type Request struct {
	Action  directive.Action
	ChatID  string
	Cascade int
}

// Result contains the outcome of a policy evaluation.
type Result struct {
	Effect Effect
	Reason string
}

func (r Result) Allowed() bool {
	return r.Effect == EffectAllow
}

// PolicyEngine evaluates actions against a set of rules.
type PolicyEngine interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
}

// DefaultPolicyEngine denies by action, by a pattern on the action input,
// or a cascade larger than MaxCascade. With no rules everything is allowed.
type DefaultPolicyEngine struct {
	DeniedActions map[directive.ActionName]struct{}
	DeniedInputs  []*regexp.Regexp
	// MaxCascade caps how many todos one search may delete; 0 means no cap.
	MaxCascade int
}

func NewDefaultPolicyEngine() *DefaultPolicyEngine {
	return &DefaultPolicyEngine{
		DeniedActions: make(map[directive.ActionName]struct{}),
	}
}

// NewPolicyEngine builds an engine from configured rules.
func NewPolicyEngine(actions []string, patterns []string, maxCascade int) (*DefaultPolicyEngine, error) {
	e := NewDefaultPolicyEngine()
	for _, a := range actions {
		e.DenyAction(directive.ActionName(a))
	}
	for _, p := range patterns {
		if err := e.DenyInput(p); err != nil {
			return nil, err
		}
	}
	if maxCascade < 0 {
		return nil, fmt.Errorf("max cascade must not be negative, got %d", maxCascade)
	}
	e.MaxCascade = maxCascade
	return e, nil
}

func (e *DefaultPolicyEngine) DenyAction(name directive.ActionName) {
	e.DeniedActions[name] = struct{}{}
}

func (e *DefaultPolicyEngine) DenyInput(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid deny pattern %q: %w", pattern, err)
	}
	e.DeniedInputs = append(e.DeniedInputs, re)
	return nil
}

func (e *DefaultPolicyEngine) Evaluate(ctx context.Context, req Request) (Result, error) {
	if _, denied := e.DeniedActions[req.Action.Name]; denied {
		return deny("Action '%s' is restricted by policy", req.Action.Name), nil
	}

	if e.MaxCascade > 0 && req.Cascade > e.MaxCascade {
		return deny("Completing %d todos at once exceeds the limit of %d", req.Cascade, e.MaxCascade), nil
	}

	for _, re := range e.DeniedInputs {
		if re.MatchString(req.Action.Input) {
			return deny("Input matches restricted pattern: %s", re.String()), nil
		}
	}

	return Result{Effect: EffectAllow, Reason: "Approved by default policy"}, nil
}

func deny(format string, args ...any) Result {
	return Result{Effect: EffectDeny, Reason: fmt.Sprintf(format, args...)}
}
