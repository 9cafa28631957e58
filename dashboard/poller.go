package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Saran-k-ece/Forensync/models"
)

const (
	// DefaultPollInterval matches the original dashboard refresh cadence.
	DefaultPollInterval = 10 * time.Second
	// DefaultNotificationTTL is how long an undismissed notification stays up.
	DefaultNotificationTTL = 30 * time.Second
)

// Notification is the transient alert for a record observed for the first
// time in a poll cycle. It is client state, distinct from the server-side
// isNew flag.
type Notification struct {
	EvidenceID string
	Evidence   models.Evidence
	ShownAt    time.Time
	ExpiresAt  time.Time
}

// Stats is the projection recomputed from the full record set after every
// successful poll. It is never persisted.
type Stats struct {
	Total     int
	New       int
	Locations int
	InTransit int
}

// Poller drives the dashboard sync loop: list, diff by id, notify, and
// recompute stats. Polls are serialized on a single goroutine so a slow
// poll can never race a later one into duplicate notifications.
type Poller struct {
	client   *Client
	interval time.Duration
	ttl      time.Duration
	log      *zap.Logger
	onNotify func(Notification)

	mu     sync.Mutex
	known  map[string]bool // ids observed in any poll
	seen   map[string]bool // ids already notified; never shown again
	active []Notification
	stats  Stats
	polled bool

	stop chan struct{}
	done chan struct{}
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

func WithNotificationTTL(d time.Duration) PollerOption {
	return func(p *Poller) { p.ttl = d }
}

func WithLogger(log *zap.Logger) PollerOption {
	return func(p *Poller) { p.log = log }
}

// WithOnNotify registers a callback invoked for each new notification.
func WithOnNotify(fn func(Notification)) PollerOption {
	return func(p *Poller) { p.onNotify = fn }
}

func NewPoller(client *Client, opts ...PollerOption) *Poller {
	p := &Poller{
		client:   client,
		interval: DefaultPollInterval,
		ttl:      DefaultNotificationTTL,
		log:      zap.NewNop(),
		known:    make(map[string]bool),
		seen:     make(map[string]bool),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the recurring poll loop. A failed poll is logged and the
// timer keeps running.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		if err := p.PollOnce(ctx); err != nil {
			p.log.Warn("initial poll failed", zap.Error(err))
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stop:
				return
			case <-ticker.C:
				if err := p.PollOnce(ctx); err != nil {
					p.log.Warn("poll failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop tears down the loop and waits for it to exit.
func (p *Poller) Stop() {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
	<-p.done
}

// PollOnce runs a single list-diff-notify cycle. On failure the held
// state is left untouched.
func (p *Poller) PollOnce(ctx context.Context) error {
	records, err := p.client.ListEvidence(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	var fresh []Notification

	p.mu.Lock()
	for _, rec := range records {
		if p.known[rec.EvidenceID] {
			continue
		}
		p.known[rec.EvidenceID] = true
		if p.seen[rec.EvidenceID] {
			continue
		}
		p.seen[rec.EvidenceID] = true
		n := Notification{
			EvidenceID: rec.EvidenceID,
			Evidence:   rec,
			ShownAt:    now,
			ExpiresAt:  now.Add(p.ttl),
		}
		p.active = append(p.active, n)
		fresh = append(fresh, n)
	}
	p.pruneExpiredLocked(now)
	p.stats = computeStats(records)
	p.polled = true
	p.mu.Unlock()

	for _, n := range fresh {
		p.log.Info("new evidence observed",
			zap.String("evidenceId", n.EvidenceID),
			zap.String("name", n.Evidence.EvidenceName),
			zap.String("location", n.Evidence.Location),
		)
		if p.onNotify != nil {
			p.onNotify(n)
		}
	}
	return nil
}

// Notifications returns the currently shown notifications, oldest first.
// Expired entries are pruned on the way out.
func (p *Poller) Notifications() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pruneExpiredLocked(time.Now())
	out := make([]Notification, len(p.active))
	copy(out, p.active)
	return out
}

// Dismiss removes a shown notification. It is local only: the server-side
// isNew flag is untouched. Returns false if the id is not shown.
func (p *Poller) Dismiss(evidenceID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.removeLocked(evidenceID)
}

// Acknowledge is the click path: it clears the server-side isNew flag via
// mark-viewed, then dismisses the local notification.
func (p *Poller) Acknowledge(ctx context.Context, evidenceID string) error {
	if _, err := p.client.MarkViewed(ctx, evidenceID); err != nil {
		return err
	}
	p.Dismiss(evidenceID)
	return nil
}

// Stats returns the projection from the most recent successful poll.
func (p *Poller) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Polled reports whether at least one poll has succeeded.
func (p *Poller) Polled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.polled
}

func (p *Poller) pruneExpiredLocked(now time.Time) {
	kept := p.active[:0]
	for _, n := range p.active {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	p.active = kept
}

func (p *Poller) removeLocked(evidenceID string) bool {
	for i, n := range p.active {
		if n.EvidenceID == evidenceID {
			p.active = append(p.active[:i], p.active[i+1:]...)
			return true
		}
	}
	return false
}

func computeStats(records []models.Evidence) Stats {
	locations := make(map[string]bool)
	s := Stats{Total: len(records)}
	for _, rec := range records {
		locations[rec.Location] = true
		if rec.IsNew {
			s.New++
		}
		if rec.Status == models.StatusInTransit {
			s.InTransit++
		}
	}
	s.Locations = len(locations)
	return s
}
