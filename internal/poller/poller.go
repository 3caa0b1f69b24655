// Package poller runs the poll-diff-notify loop for homework statuses.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"homework_bot/internal/homework"
	"homework_bot/internal/practicum"
)

// DefaultInterval is the pause between two polls.
const DefaultInterval = 10 * time.Minute

// API is the interface for fetching raw homework statuses.
type API interface {
	Fetch(ctx context.Context, fromDate int64) (json.RawMessage, error)
}

// Sender is the interface for delivering notifications.
type Sender interface {
	Notify(text string)
}

// Outcome describes what a single cycle did.
type Outcome int

// Cycle outcomes.
const (
	NoHomeworks Outcome = iota + 1
	Unchanged
	StatusSent
	ErrorSent
	ErrorSuppressed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case NoHomeworks:
		return "no_homeworks"
	case Unchanged:
		return "unchanged"
	case StatusSent:
		return "status_sent"
	case ErrorSent:
		return "error_sent"
	case ErrorSuppressed:
		return "error_suppressed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Poller polls the API and notifies about status changes. It remembers the
// last message sent on the status and error channels and never repeats one.
type Poller struct {
	api      API
	sender   Sender
	log      *slog.Logger
	interval time.Duration

	cursor     int64
	lastStatus string
	lastError  string
}

// New creates a Poller whose cursor starts at now.
func New(api API, sender Sender, now time.Time, log *slog.Logger) *Poller {
	return &Poller{
		api:      api,
		sender:   sender,
		log:      log,
		interval: DefaultInterval,
		cursor:   now.Unix(),
	}
}

// SetInterval overrides the default 10-minute interval.
func (p *Poller) SetInterval(d time.Duration) {
	p.interval = d
}

// Cursor returns the from_date used for the next request.
func (p *Poller) Cursor() int64 {
	return p.cursor
}

// Run polls until ctx is cancelled. The interval is waited after every
// cycle, whether it succeeded or not.
func (p *Poller) Run(ctx context.Context) {
	for {
		outcome := p.cycle(ctx)
		p.log.Debug("cycle finished", "outcome", outcome, "cursor", p.cursor)

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.interval):
		}
	}
}

func (p *Poller) cycle(ctx context.Context) Outcome {
	outcome, err := p.check(ctx)
	if err == nil {
		return outcome
	}
	if ctx.Err() != nil {
		p.log.Debug("poll cycle interrupted", "error", err)
		return Cancelled
	}

	message := fmt.Sprintf("Program failure: %v", err)
	p.log.Error("poll cycle failed", "error", err)
	if message == p.lastError {
		return ErrorSuppressed
	}
	p.sender.Notify(message)
	p.lastError = message
	return ErrorSent
}

func (p *Poller) check(ctx context.Context) (Outcome, error) {
	raw, err := p.api.Fetch(ctx, p.cursor)
	if err != nil {
		return 0, err
	}

	resp, err := practicum.Decode(raw)
	if err != nil {
		return 0, err
	}
	if resp.CurrentDate != nil {
		p.cursor = *resp.CurrentDate
	}

	hw, ok := resp.Latest()
	if !ok {
		p.log.Debug("no new homework statuses")
		return NoHomeworks, nil
	}

	message, err := homework.Extract(hw)
	if err != nil {
		return 0, err
	}
	if message == p.lastStatus {
		p.log.Debug("homework status unchanged")
		return Unchanged, nil
	}

	p.log.Info("homework status changed", "message", message)
	p.sender.Notify(message)
	p.lastStatus = message
	return StatusSent, nil
}
