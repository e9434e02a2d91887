// internal/services/book_service.go
package services

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/bookswap/bookswap-api/internal/models"
	"github.com/bookswap/bookswap-api/internal/utils"
)

type BookService struct {
	db *gorm.DB
}

type CreateBookRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Genre       string `json:"genre" validate:"required,max=100"`
	Language    string `json:"language" validate:"required,max=50"`
	Edition     string `json:"edition" validate:"required,max=100"`
	CoverImage  string `json:"cover_image,omitempty"`
}

type UpdateBookRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Author      *string `json:"author,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	Language    *string `json:"language,omitempty" validate:"omitempty,max=50"`
	Edition     *string `json:"edition,omitempty" validate:"omitempty,max=100"`
	CoverImage  *string `json:"cover_image,omitempty"`
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

// Create adds a book to the caller's shelf and returns it together with a
// QR code data URL encoding the book id.
func (s *BookService) Create(ownerID uuid.UUID, req *CreateBookRequest) (*models.Book, string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, "", fmt.Errorf("validation failed: %w", err)
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Genre:       req.Genre,
		Language:    req.Language,
		Edition:     req.Edition,
		CoverImage:  req.CoverImage,
		OwnerID:     ownerID,
		Status:      models.BookStatusAvailable,
	}

	if err := s.db.Create(book).Error; err != nil {
		return nil, "", fmt.Errorf("%w: failed to create book: %v", ErrStorageFailure, err)
	}

	qrCode, err := generateQRDataURL(book.ID.String())
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	s.db.Preload("Owner").First(book, "id = ?", book.ID)
	return book, qrCode, nil
}

// List returns available books matching the search/genre filters, newest
// first, paginated.
func (s *BookService) List(params utils.PaginationParams) ([]models.Book, int64, error) {
	query := s.db.Model(&models.Book{}).
		Where("status = ?", models.BookStatusAvailable).
		Preload("Owner")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR author LIKE ? OR description LIKE ?", pattern, pattern, pattern)
	}

	if params.Genre != "" {
		query = query.Where("genre LIKE ?", "%"+params.Genre+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: failed to count books: %v", ErrStorageFailure, err)
	}

	allowedSortFields := []string{"created_at", "title", "author"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var books []models.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: failed to fetch books: %v", ErrStorageFailure, err)
	}

	return books, total, nil
}

// ListForOwner returns every book on a user's shelf regardless of status.
func (s *BookService) ListForOwner(ownerID uuid.UUID) ([]models.Book, error) {
	var books []models.Book
	err := s.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch books: %v", ErrStorageFailure, err)
	}
	return books, nil
}

func (s *BookService) Get(id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := s.db.Preload("Owner").First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return &book, nil
}

// Update edits a book's descriptive fields. Owner and status cannot be
// changed through this path; only the current owner may edit.
func (s *BookService) Update(id, userID uuid.UUID, req *UpdateBookRequest) (*models.Book, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	book, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if book.OwnerID != userID {
		return nil, ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Edition != nil {
		updates["edition"] = *req.Edition
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}

	if len(updates) > 0 {
		if err := s.db.Model(book).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: failed to update book: %v", ErrStorageFailure, err)
		}
	}

	return s.Get(id)
}

// Delete soft-deletes a listing by marking it unavailable. Books reserved
// by a live trade cannot be removed until that trade settles.
func (s *BookService) Delete(id, userID uuid.UUID) error {
	book, err := s.Get(id)
	if err != nil {
		return err
	}

	if book.OwnerID != userID {
		return ErrUnauthorized
	}
	if book.Status == models.BookStatusPending {
		return ErrBookUnavailable
	}

	if err := s.db.Model(book).Update("status", models.BookStatusUnavailable).Error; err != nil {
		return fmt.Errorf("%w: failed to delete book: %v", ErrStorageFailure, err)
	}
	return nil
}

func generateQRDataURL(data string) (string, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
