// internal/models/book.go
package models

import (
	"github.com/google/uuid"
)

// Book is a listing on a user's shelf. OwnerID is the only mutable
// reference: it changes exactly once per completed trade.
type Book struct {
	BaseModel
	Title       string     `json:"title" gorm:"size:255;not null"`
	Author      string     `json:"author" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Genre       string     `json:"genre" gorm:"size:100;index"`
	Language    string     `json:"language" gorm:"size:50"`
	Edition     string     `json:"edition" gorm:"size:100"`
	CoverImage  string     `json:"cover_image,omitempty" gorm:"size:512"`
	OwnerID     uuid.UUID  `json:"owner_id" gorm:"type:uuid;not null;index"`
	Status      BookStatus `json:"status" gorm:"type:varchar(20);default:'available';index"`

	// Relationships
	Owner User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
