package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one consumed domain event. EventID is unique so replays of
// the same Kafka message are stored once.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID    string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	EntityType string    `gorm:"type:varchar(50);index:idx_audit_entity,priority:1;not null"`
	EntityID   string    `gorm:"type:varchar(36);index:idx_audit_entity,priority:2;not null"`
	Action     string    `gorm:"type:varchar(100);not null"`
	ActorID    string    `gorm:"type:varchar(36)"`
	RequestID  string    `gorm:"type:varchar(64)"`
	Topic      string    `gorm:"type:varchar(150)"`
	Payload    string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"index"`
	CreatedAt  time.Time
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
