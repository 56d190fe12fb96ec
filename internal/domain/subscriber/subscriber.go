package subscriber

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Subscriber represents a registered recipient of the daily verse.
type Subscriber struct {
	ID        uuid.UUID
	Name      string
	Email     sql.NullString // At least one of Email/Phone is always present.
	Phone     sql.NullString
	IsActive  bool
	CreatedAt time.Time
}
