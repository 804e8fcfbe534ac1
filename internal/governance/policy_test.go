package governance

import (
	"context"
	"testing"

	"github.com/rahul/alfred/internal/directive"
)

func TestDefaultPolicyEngine_Evaluate(t *testing.T) {
	engine := NewDefaultPolicyEngine()
	ctx := context.Background()

	// Test Allow (Default)
	res1, err := engine.Evaluate(ctx, Request{Action: directive.Action{Name: directive.SearchTodo, Input: "milk"}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !res1.Allowed() {
		t.Errorf("Expected EffectAllow, got %s", res1.Effect)
	}

	// Test Deny by action
	engine.DenyAction(directive.DeleteTodoByID)
	res2, err := engine.Evaluate(ctx, Request{Action: directive.Action{Name: directive.DeleteTodoByID, Input: "3"}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res2.Effect != EffectDeny {
		t.Errorf("Expected EffectDeny, got %s", res2.Effect)
	}
	if res2.Reason != "Action 'deleteTodoById' is restricted by policy" {
		t.Errorf("Unexpected reason %q", res2.Reason)
	}
}

func TestNewPolicyEngine(t *testing.T) {
	engine, err := NewPolicyEngine([]string{"createTodo"}, []string{`(?i)password`}, 2)
	if err != nil {
		t.Fatalf("NewPolicyEngine failed: %v", err)
	}
	ctx := context.Background()

	deleteTodo := directive.Action{Name: directive.DeleteTodoByID, Input: "7"}
	cases := []struct {
		req  Request
		want Effect
	}{
		{Request{Action: directive.Action{Name: directive.CreateTodo, Input: "buy milk"}}, EffectDeny},
		{Request{Action: directive.Action{Name: directive.SearchTodo, Input: "my PASSWORD list"}}, EffectDeny},
		{Request{Action: directive.Action{Name: directive.SearchTodo, Input: "milk"}}, EffectAllow},
		{Request{Action: deleteTodo}, EffectAllow},
		{Request{Action: deleteTodo, Cascade: 2}, EffectAllow},
		{Request{Action: deleteTodo, Cascade: 3}, EffectDeny},
	}
	for _, c := range cases {
		res, err := engine.Evaluate(ctx, c.req)
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if res.Effect != c.want {
			t.Errorf("%+v: expected %s, got %s (%s)", c.req, c.want, res.Effect, res.Reason)
		}
	}

	if _, err := NewPolicyEngine(nil, []string{"("}, 0); err == nil {
		t.Error("Expected an error for an invalid pattern")
	}
	if _, err := NewPolicyEngine(nil, nil, -1); err == nil {
		t.Error("Expected an error for a negative cascade limit")
	}
}

func TestMaxCascade_Unlimited(t *testing.T) {
	engine, err := NewPolicyEngine(nil, nil, 0)
	if err != nil {
		t.Fatalf("NewPolicyEngine failed: %v", err)
	}
	res, err := engine.Evaluate(context.Background(), Request{
		Action:  directive.Action{Name: directive.DeleteTodoByID, Input: "1"},
		Cascade: 500,
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !res.Allowed() {
		t.Errorf("Expected EffectAllow, got %s (%s)", res.Effect, res.Reason)
	}
}
