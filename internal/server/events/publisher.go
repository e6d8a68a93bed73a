// Package events publishes record notifications for the external reporting
// consumers. Publishing is best-effort: a failed publish never fails the
// write that triggered it.
package events

import "context"

// RecordAdded is the message body published after a finance record lands in
// the store.
type RecordAdded struct {
	ID      string `json:"id"`
	Income  *int64 `json:"income,omitempty"`
	Debt    *int64 `json:"debt,omitempty"`
	Savings *int64 `json:"savings,omitempty"`
	TS      string `json:"ts"`
}

// Publisher sends record notifications to interested consumers.
type Publisher interface {
	PublishRecordAdded(ctx context.Context, msg RecordAdded) error
	Close() error
}

// Noop discards all notifications. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishRecordAdded(context.Context, RecordAdded) error { return nil }
func (Noop) Close() error                                          { return nil }
