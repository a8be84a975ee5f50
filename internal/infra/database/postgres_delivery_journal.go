// internal/infra/database/postgres_delivery_journal.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"homework_status_bot/internal/domain/notification"
)

type PostgresDeliveryJournal struct {
	db *sql.DB
}

func NewPostgresDeliveryJournal(db *sql.DB) *PostgresDeliveryJournal {
	return &PostgresDeliveryJournal{db: db}
}

func (r *PostgresDeliveryJournal) Record(ctx context.Context, d *notification.Delivery) error {
	query := `INSERT INTO notification_deliveries (chat_id, message, delivered, delivery_error)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, d.ChatID, d.Message, d.Delivered, d.DeliveryError).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording notification delivery: %w", err)
	}
	return nil
}
