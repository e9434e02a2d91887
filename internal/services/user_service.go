// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookswap/bookswap-api/internal/models"
	"github.com/bookswap/bookswap-api/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return &user, nil
}

// List is the admin user listing with optional name search.
func (s *UserService) List(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Search != "" {
		query = query.Where("name LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: failed to count users: %v", ErrStorageFailure, err)
	}

	allowedSortFields := []string{"created_at", "name", "email"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: failed to fetch users: %v", ErrStorageFailure, err)
	}

	return users, total, nil
}

func (s *UserService) UpdateProfile(id uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		var other models.User
		if err := s.db.Where("email = ? AND id != ?", *req.Email, id).First(&other).Error; err == nil {
			return nil, ErrEmailTaken
		}
		updates["email"] = *req.Email
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: failed to update profile: %v", ErrStorageFailure, err)
		}
	}

	return s.Get(id)
}

func (s *UserService) UpdateProfilePic(id uuid.UUID, picURL string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("profile_pic", picURL).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to update profile picture: %v", ErrStorageFailure, err)
	}
	user.ProfilePic = picURL
	return user, nil
}

// DeleteAccount soft-deletes the user and marks their available books
// unavailable so they drop out of the catalog.
func (s *UserService) DeleteAccount(id uuid.UUID) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.db.Model(&models.Book{}).
		Where("owner_id = ? AND status = ?", id, models.BookStatusAvailable).
		Update("status", models.BookStatusUnavailable).Error
	if err != nil {
		return fmt.Errorf("%w: failed to retire books: %v", ErrStorageFailure, err)
	}

	if err := s.db.Delete(user).Error; err != nil {
		return fmt.Errorf("%w: failed to delete account: %v", ErrStorageFailure, err)
	}
	return nil
}
