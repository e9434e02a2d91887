// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/bookswap/bookswap-api/internal/models"
	"github.com/bookswap/bookswap-api/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.db = openTestDB(suite.T())
	suite.service = NewUserService(suite.db)
}

func (suite *UserServiceTestSuite) createUser(name, email string) *models.User {
	user := &models.User{Name: name, Email: email, Role: models.UserRoleUser}
	assert.NoError(suite.T(), user.SetPassword("password123"))
	assert.NoError(suite.T(), suite.db.Create(user).Error)
	return user
}

func (suite *UserServiceTestSuite) TestUpdateProfile() {
	user := suite.createUser("Old Name", "old@example.com")

	newName := "New Name"
	updated, err := suite.service.UpdateProfile(user.ID, &UpdateProfileRequest{Name: &newName})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Name", updated.Name)
	assert.Equal(suite.T(), "old@example.com", updated.Email)
}

func (suite *UserServiceTestSuite) TestUpdateProfileEmailTaken() {
	suite.createUser("First", "taken@example.com")
	second := suite.createUser("Second", "second@example.com")

	taken := "taken@example.com"
	_, err := suite.service.UpdateProfile(second.ID, &UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

func (suite *UserServiceTestSuite) TestList() {
	suite.createUser("Alice", "alice@example.com")
	suite.createUser("Bob", "bob@example.com")

	users, total, err := suite.service.List(utils.PaginationParams{Page: 1, Limit: 10})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), users, 2)

	users, total, err = suite.service.List(utils.PaginationParams{Page: 1, Limit: 10, Search: "Ali"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Equal(suite.T(), "Alice", users[0].Name)
}

func (suite *UserServiceTestSuite) TestDeleteAccountRetiresBooks() {
	user := suite.createUser("Leaver", "leaver@example.com")
	book := &models.Book{
		Title:   "Left Behind",
		Author:  "Someone",
		Genre:   "Fiction",
		OwnerID: user.ID,
		Status:  models.BookStatusAvailable,
	}
	assert.NoError(suite.T(), suite.db.Create(book).Error)

	assert.NoError(suite.T(), suite.service.DeleteAccount(user.ID))

	_, err := suite.service.Get(user.ID)
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)

	var reloaded models.Book
	assert.NoError(suite.T(), suite.db.First(&reloaded, "id = ?", book.ID).Error)
	assert.Equal(suite.T(), models.BookStatusUnavailable, reloaded.Status)
}

func (suite *UserServiceTestSuite) TestGetNotFound() {
	_, err := suite.service.Get(uuid.New())
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
