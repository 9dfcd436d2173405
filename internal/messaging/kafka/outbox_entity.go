package kafka

import "time"

// OutboxRecord describes the outbox_events table for schema migration. The
// repository itself works on plain SQL.
type OutboxRecord struct {
	ID            string `gorm:"type:varchar(36);primaryKey"`
	RequestID     string `gorm:"type:varchar(64);not null;default:''"`
	AggregateType string `gorm:"type:varchar(50);not null"`
	AggregateID   string `gorm:"type:varchar(36);not null;index"`
	EventType     string `gorm:"type:varchar(100);not null"`
	Topic         string `gorm:"type:varchar(150);not null"`
	Payload       []byte `gorm:"not null"`
	Status        string `gorm:"type:varchar(20);not null;index:idx_outbox_status_created,priority:1"`
	RetryCount    int    `gorm:"not null;default:0"`
	ErrorMessage  *string
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"index:idx_outbox_status_created,priority:2"`
	UpdatedAt     time.Time
}

func (OutboxRecord) TableName() string {
	return "outbox_events"
}
