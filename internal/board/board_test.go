package board

import (
	"context"
	"encoding/json"
	"testing"

	"console/internal/domain"
)

type fakePatcher struct {
	calls []map[string]string
	err   error
}

func (f *fakePatcher) Patch(ctx context.Context, path, id string, payload any) (json.RawMessage, error) {
	m := map[string]string{"id": id}
	if p, ok := payload.(map[string]string); ok {
		for k, v := range p {
			m[k] = v
		}
	}
	f.calls = append(f.calls, m)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{}`), nil
}

var columns = []string{"TODO", "IN_PROGRESS", "REVIEW", "DONE"}

func seededBoard(p Patcher) *Board {
	b := New(p, "/pm/tasks", columns)
	b.Load([]Card{
		{ID: "t1", Title: "Setup CI", Status: "TODO"},
		{ID: "t2", Title: "Fix login", Status: "IN_PROGRESS"},
		{ID: "t3", Title: "Ship report", Status: "DONE"},
	})
	return b
}

func TestMoveIssuesPatchAndKeepsCard(t *testing.T) {
	p := &fakePatcher{}
	b := seededBoard(p)

	if err := b.Move(context.Background(), "t1", "DONE"); err != nil {
		t.Fatalf("Move: %v", err)
	}

	if len(p.calls) != 1 || p.calls[0]["id"] != "t1" || p.calls[0]["status"] != "DONE" {
		t.Fatalf("expected PATCH {status: DONE} for t1, got %+v", p.calls)
	}
	cols := b.Columns()
	if len(cols["DONE"]) != 2 || len(cols["TODO"]) != 0 {
		t.Fatalf("card did not land in DONE: %+v", cols)
	}
}

func TestMoveRollsBackOnRejection(t *testing.T) {
	p := &fakePatcher{err: domain.ValidationError{Msg: "transisi tidak diizinkan"}}
	b := seededBoard(p)

	err := b.Move(context.Background(), "t1", "DONE")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	cols := b.Columns()
	if len(cols["TODO"]) != 1 || cols["TODO"][0].ID != "t1" {
		t.Fatalf("rejected move must roll the card back to TODO: %+v", cols)
	}
	if len(cols["DONE"]) != 1 {
		t.Fatalf("DONE column polluted after rollback: %+v", cols["DONE"])
	}
}

func TestMoveToSameColumnIsNoOp(t *testing.T) {
	p := &fakePatcher{}
	b := seededBoard(p)

	if err := b.Move(context.Background(), "t3", "DONE"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if len(p.calls) != 0 {
		t.Fatalf("same-column move must not hit the server, got %d calls", len(p.calls))
	}
}

func TestMoveUnknownCardAndColumn(t *testing.T) {
	p := &fakePatcher{}
	b := seededBoard(p)

	if err := b.Move(context.Background(), "ghost", "DONE"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := b.Move(context.Background(), "t1", "ARCHIVED"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown column, got %v", err)
	}
	if len(p.calls) != 0 {
		t.Fatal("invalid moves must not reach the server")
	}
}

func TestColumnsDropUnknownStatuses(t *testing.T) {
	b := New(&fakePatcher{}, "/pm/tasks", columns)
	b.Load([]Card{
		{ID: "t1", Status: "TODO"},
		{ID: "weird", Status: "LIMBO"},
	})
	cols := b.Columns()
	total := 0
	for _, cards := range cols {
		total += len(cards)
	}
	if total != 1 {
		t.Fatalf("unknown-status card should be dropped from render, got %d cards", total)
	}
}
