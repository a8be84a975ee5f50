// internal/domain/notification/repository.go
package notification

import "context"

// Journal keeps an audit trail of delivery attempts. It is write-only:
// nothing in the polling loop reads it back.
type Journal interface {
	Record(ctx context.Context, d *Delivery) error
}

// NopJournal is used when no database is configured.
type NopJournal struct{}

func (NopJournal) Record(context.Context, *Delivery) error { return nil }
