package dispatch

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"console/internal/utils"
)

// Client is the slice of the API client the dispatch center uses.
type Client interface {
	Fetch(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Put(ctx context.Context, path string, payload any) (json.RawMessage, error)
}

// Snapshot is one poll of the dispatch dashboard. Vehicle and alert
// payloads stay opaque; the dispatch logic lives server-side and this
// client only renders and approves/rejects.
type Snapshot struct {
	Vehicles    []json.RawMessage `json:"vehicles"`
	Alerts      []json.RawMessage `json:"alerts"`
	AIDecisions []Decision        `json:"ai_decisions"`
	GeneratedAt string            `json:"generated_at"`
}

// Decision is a pending AI dispatch suggestion awaiting operator review.
type Decision struct {
	ID         string  `json:"id"`
	Summary    string  `json:"summary"`
	VehicleID  string  `json:"vehicle_id"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"`
}

// Poller keeps a dispatch dashboard snapshot fresh on a fixed interval.
// The same latest-wins rule as the list controller applies: an older
// poll resolving after a newer one is dropped.
type Poller struct {
	client   Client
	path     string
	interval time.Duration

	mu     sync.Mutex
	issued uint64
	last   Snapshot
	err    error
	seen   bool
}

func NewPoller(client Client, path string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{client: client, path: path, interval: interval}
}

// Refresh performs one poll immediately.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.issued++
	ticket := p.issued
	p.mu.Unlock()

	raw, err := p.client.Fetch(ctx, p.path, nil)

	p.mu.Lock()
	defer p.mu.Unlock()
	if ticket != p.issued {
		return nil
	}
	if err != nil {
		p.last = Snapshot{}
		p.err = err
		p.seen = true
		return err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		p.last = Snapshot{}
		p.err = err
		p.seen = true
		return err
	}
	p.last = snap
	p.err = nil
	p.seen = true
	return nil
}

// Run polls until ctx is canceled, starting with an immediate refresh.
// Poll errors are logged and retried on the next tick; the operator keeps
// the error banner until a poll succeeds again.
func (p *Poller) Run(ctx context.Context) {
	_ = p.Refresh(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				utils.LogEvent("", "dispatch", "poll_failed", err.Error())
			}
		}
	}
}

// Snapshot returns the last poll outcome. ok is false before the first
// poll settles.
func (p *Poller) Snapshot() (snap Snapshot, err error, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.err, p.seen
}

// Approve accepts a pending AI decision and refreshes the dashboard.
func (p *Poller) Approve(ctx context.Context, decisionID string) error {
	return p.decide(ctx, decisionID, "approve")
}

// Reject declines a pending AI decision and refreshes the dashboard.
func (p *Poller) Reject(ctx context.Context, decisionID string) error {
	return p.decide(ctx, decisionID, "reject")
}

func (p *Poller) decide(ctx context.Context, decisionID, verb string) error {
	if _, err := p.client.Put(ctx, p.path+"/decisions/"+url.PathEscape(decisionID)+"/"+verb, nil); err != nil {
		return err
	}
	utils.LogEvent("", "dispatch", verb, "decision_id="+decisionID)
	return p.Refresh(ctx)
}
