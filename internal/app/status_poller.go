// internal/app/status_poller.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Fetcher retrieves the raw answer of the homework statuses API.
type Fetcher interface {
	Fetch(ctx context.Context, cursor int64) (any, error)
}

// Pacer blocks between polling cycles.
type Pacer interface {
	Wait(ctx context.Context) error
}

// StatusPoller runs the fetch → validate → interpret → notify cycle and owns the time cursor.
// It is not safe for concurrent use; Run is meant to be the only caller.
type StatusPoller struct {
	fetcher  Fetcher
	verdicts homework.Verdicts
	notifier Notifier
	pacer    Pacer
	logger   *logrus.Entry
	cursor   int64
}

func NewStatusPoller(
	fetcher Fetcher,
	verdicts homework.Verdicts,
	notifier Notifier,
	pacer Pacer,
	logger *logrus.Entry,
	now func() time.Time,
) *StatusPoller {
	return &StatusPoller{
		fetcher:  fetcher,
		verdicts: verdicts,
		notifier: notifier,
		pacer:    pacer,
		logger:   logger,
		cursor:   now().Unix(),
	}
}

// Cursor returns the lower bound of the next query window.
func (p *StatusPoller) Cursor() int64 { return p.cursor }

// Run polls until ctx is cancelled. Cycle failures never stop the loop.
func (p *StatusPoller) Run(ctx context.Context) error {
	p.logger.WithField("from_date", p.cursor).Info("Status poller started")
	for {
		p.RunCycle(ctx)

		if err := p.pacer.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				p.logger.Info("Status poller stopped")
				return nil
			}
			return fmt.Errorf("status poller: %w", err)
		}
	}
}

// RunCycle performs one polling cycle. The cursor advances only when the cycle succeeds.
// A cycle interrupted by shutdown is dropped silently.
func (p *StatusPoller) RunCycle(ctx context.Context) {
	currentDate, err := p.check(ctx)
	if err != nil {
		if ctx.Err() != nil {
			p.logger.WithError(err).Debug("Cycle interrupted by shutdown")
			return
		}
		p.reportFailure(ctx, err)
		return
	}
	p.cursor = currentDate
}

func (p *StatusPoller) check(ctx context.Context) (int64, error) {
	answer, err := p.fetcher.Fetch(ctx, p.cursor)
	if err != nil {
		return 0, err
	}

	resp, err := homework.ValidateResponse(answer)
	if err != nil {
		return 0, err
	}

	if len(resp.Homeworks) == 0 {
		p.logger.Debug("No new updates")
		return resp.CurrentDate, nil
	}

	p.logger.Debug("New homework update found")
	message, err := p.verdicts.ParseStatus(resp.Homeworks[0])
	if err != nil {
		return 0, err
	}
	p.notifier.Notify(ctx, message)

	return resp.CurrentDate, nil
}

func (p *StatusPoller) reportFailure(ctx context.Context, err error) {
	message := fmt.Sprintf("Сбой в работе программы: %v", err)

	entry := p.logger.WithField("from_date", p.cursor)
	kind := homework.KindOf(err)
	switch kind {
	case homework.KindNetworkFailure:
		entry = entry.WithField("retry_same_window", true)
	case homework.KindServerFailure, homework.KindUnexpectedStatus:
		var apiErr *homework.Error
		if errors.As(err, &apiErr) {
			entry = entry.WithField("http_status", apiErr.StatusCode)
		}
	case homework.KindMalformedResponse, homework.KindTypeMismatch:
		entry = entry.WithField("contract_violation", true)
	case homework.KindUnknown:
	}

	entry.WithField("error_kind", kind.String()).Error(message)
	p.notifier.Notify(ctx, message)
}
