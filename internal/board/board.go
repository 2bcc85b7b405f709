package board

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"console/internal/domain"
	"console/internal/utils"
)

// Patcher is the one API call a kanban board needs beyond the list fetch.
type Patcher interface {
	Patch(ctx context.Context, path, id string, payload any) (json.RawMessage, error)
}

// Card is one draggable unit on the board.
type Card struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Assignee string `json:"assignee,omitempty"`
}

// Board groups cards into status columns and performs drag-and-drop
// status mutations. A move is applied optimistically so the card lands in
// its new column immediately; the pre-move snapshot is kept and restored
// when the PATCH is rejected.
type Board struct {
	client  Patcher
	path    string
	columns []string

	mu    sync.Mutex
	cards []Card
}

func New(client Patcher, path string, columns []string) *Board {
	return &Board{client: client, path: path, columns: columns}
}

// Load replaces the board content wholesale, same as a list refetch.
func (b *Board) Load(cards []Card) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cards = make([]Card, len(cards))
	copy(b.cards, cards)
}

// Columns returns the cards bucketed per configured column, in load
// order. Cards with an unknown status are dropped from the render, not
// errored.
func (b *Board) Columns() map[string][]Card {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string][]Card, len(b.columns))
	for _, col := range b.columns {
		out[col] = []Card{}
	}
	for _, c := range b.cards {
		if _, ok := out[c.Status]; ok {
			out[c.Status] = append(out[c.Status], c)
		}
	}
	return out
}

// Move drags card id into the toStatus column. The local card is updated
// before the PATCH is sent; if the server rejects the mutation the card
// is rolled back to where it came from and the error is surfaced.
func (b *Board) Move(ctx context.Context, id, toStatus string) error {
	if !b.knownColumn(toStatus) {
		return domain.ValidationError{Field: "status", Msg: fmt.Sprintf("kolom %q tidak dikenal", toStatus)}
	}

	b.mu.Lock()
	idx := -1
	for i := range b.cards {
		if b.cards[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return domain.NotFoundError{Resource: "card " + id}
	}
	from := b.cards[idx].Status
	if from == toStatus {
		b.mu.Unlock()
		return nil
	}
	b.cards[idx].Status = toStatus // optimistic
	b.mu.Unlock()

	_, err := b.client.Patch(ctx, b.path, id, map[string]string{"status": toStatus})
	if err != nil {
		// Compensate: put the card back in its original column.
		b.mu.Lock()
		for i := range b.cards {
			if b.cards[i].ID == id {
				b.cards[i].Status = from
				break
			}
		}
		b.mu.Unlock()
		utils.LogEvent("", "board", "move_rolled_back",
			fmt.Sprintf("id=%s from=%s to=%s err=%s", id, from, toStatus, err))
		return err
	}

	utils.LogEvent("", "board", "move", fmt.Sprintf("id=%s from=%s to=%s", id, from, toStatus))
	return nil
}

func (b *Board) knownColumn(status string) bool {
	for _, c := range b.columns {
		if c == status {
			return true
		}
	}
	return false
}
