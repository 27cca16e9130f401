package domain

import (
	"database/sql"
	"time"
)

// User is one row per distinct Telegram identity.
//
// Rating is derived as Likes+Views and is only recomputed when metrics are
// written; it is never recalculated on read. LastActive is NULL until the
// user's first recorded activity after the column was introduced.
type User struct {
	ID          int64
	Handle      string
	DisplayName string
	ContentLink string
	RealName    string
	Phone       string
	Likes       int64
	Views       int64
	Rating      int64
	CreatedAt   time.Time
	LastActive  sql.NullTime
}
