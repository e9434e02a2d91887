// internal/models/trade.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Trade is a proposed exchange of two books between two users. The
// requester initiates it with a book they own; the owner of the requested
// book responds. Completion requires a two-phase handshake: the owner
// confirms first (status awaiting_requester), then the requester finalizes
// and book ownership is swapped atomically.
type Trade struct {
	BaseModel
	RequesterID             uuid.UUID   `json:"requester_id" gorm:"type:uuid;not null;index"`
	OwnerID                 uuid.UUID   `json:"owner_id" gorm:"type:uuid;not null;index"`
	OfferedBookID           uuid.UUID   `json:"offered_book_id" gorm:"type:uuid;not null"`
	RequestedBookID         uuid.UUID   `json:"requested_book_id" gorm:"type:uuid;not null"`
	ProposedBookFromOwnerID *uuid.UUID  `json:"proposed_book_from_owner_id,omitempty" gorm:"type:uuid"`
	Status                  TradeStatus `json:"status" gorm:"type:varchar(30);default:'proposed';index"`
	NotesFromRequester      string      `json:"notes_from_requester,omitempty" gorm:"type:text"`
	NotesFromOwner          string      `json:"notes_from_owner,omitempty" gorm:"type:text"`
	TradeDate               *time.Time  `json:"trade_date,omitempty"`

	// Relationships
	Requester             User  `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Owner                 User  `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	OfferedBook           Book  `json:"offered_book,omitempty" gorm:"foreignKey:OfferedBookID"`
	RequestedBook         Book  `json:"requested_book,omitempty" gorm:"foreignKey:RequestedBookID"`
	ProposedBookFromOwner *Book `json:"proposed_book_from_owner,omitempty" gorm:"foreignKey:ProposedBookFromOwnerID"`
}

// ReceivedBookID is the book the requester receives on completion: the
// counter-offered book when the owner countered and the requester accepted,
// otherwise the originally requested one.
func (t *Trade) ReceivedBookID() uuid.UUID {
	if t.ProposedBookFromOwnerID != nil {
		return *t.ProposedBookFromOwnerID
	}
	return t.RequestedBookID
}

// IsParty reports whether userID is the requester or the owner.
func (t *Trade) IsParty(userID uuid.UUID) bool {
	return t.RequesterID == userID || t.OwnerID == userID
}
