// internal/domain/notification/delivery.go
package notification

import (
	"database/sql"
	"time"
)

// Delivery is one attempt to send a message to the tracked chat.
// Corresponds to the 'notification_deliveries' table.
type Delivery struct {
	ID            int64
	ChatID        int64
	Message       string
	Delivered     bool
	DeliveryError sql.NullString // Telegram error text when Delivered is false
	CreatedAt     time.Time
}
