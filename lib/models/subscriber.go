package models

import "time"

// Subscriber is an end user tracking one or more apps. The ID is the
// messaging-platform chat id, assigned externally, so it is never
// auto-incremented here. Rows are created on first interaction and
// never deleted by the core.
type Subscriber struct {
	ID         int64 `gorm:"primaryKey;autoIncrement:false"`
	FirstSeen  time.Time
	LastActive time.Time
}
