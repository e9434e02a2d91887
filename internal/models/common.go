// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate assigns the primary key in the application so the models
// also work on databases without gen_random_uuid() (tests run on SQLite).
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type BookStatus string

const (
	BookStatusAvailable   BookStatus = "available"
	BookStatusPending     BookStatus = "pending"
	BookStatusUnavailable BookStatus = "unavailable"
)

type TradeStatus string

const (
	TradeStatusProposed          TradeStatus = "proposed"
	TradeStatusCountered         TradeStatus = "countered"
	TradeStatusAccepted          TradeStatus = "accepted"
	TradeStatusRejected          TradeStatus = "rejected"
	TradeStatusCancelled         TradeStatus = "cancelled"
	TradeStatusAwaitingRequester TradeStatus = "awaiting_requester"
	TradeStatusCompleted         TradeStatus = "completed"
)

// Terminal reports whether no further transition is permitted from s.
func (s TradeStatus) Terminal() bool {
	return s == TradeStatusRejected || s == TradeStatusCancelled || s == TradeStatusCompleted
}
