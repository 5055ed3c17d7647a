package model

import (
	"time"

	"github.com/google/uuid"
)

type RetestStatus string

const (
	RetestStatusPending   RetestStatus = "pending"
	RetestStatusCompleted RetestStatus = "completed"
)

type RetestAssignment struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	AdminID     uuid.UUID    `json:"admin_id" gorm:"type:uuid;not null"`
	ManagerID   uuid.UUID    `json:"manager_id" gorm:"type:uuid;not null;index"`
	Category    *Category    `json:"category,omitempty" gorm:"type:varchar(32)"`
	QuestionIDs IDList       `json:"question_ids,omitempty"`
	Reason      *string      `json:"reason,omitempty" gorm:"type:text"`
	Status      RetestStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}
