// internal/services/book_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/bookswap/bookswap-api/internal/models"
	"github.com/bookswap/bookswap-api/internal/utils"
)

type BookServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *BookService
	owner   *models.User
}

func (suite *BookServiceTestSuite) SetupTest() {
	suite.db = openTestDB(suite.T())
	suite.service = NewBookService(suite.db)

	suite.owner = &models.User{
		Name:  "Dana",
		Email: "dana@example.com",
		Role:  models.UserRoleUser,
	}
	assert.NoError(suite.T(), suite.owner.SetPassword("password123"))
	assert.NoError(suite.T(), suite.db.Create(suite.owner).Error)
}

func (suite *BookServiceTestSuite) createBook(title, genre string) *models.Book {
	book, _, err := suite.service.Create(suite.owner.ID, &CreateBookRequest{
		Title:       title,
		Author:      "Some Author",
		Description: "A description",
		Genre:       genre,
		Language:    "English",
		Edition:     "1st",
	})
	assert.NoError(suite.T(), err)
	return book
}

func (suite *BookServiceTestSuite) TestCreate() {
	book, qrCode, err := suite.service.Create(suite.owner.ID, &CreateBookRequest{
		Title:       "Neuromancer",
		Author:      "William Gibson",
		Description: "Cyberpunk classic",
		Genre:       "Science Fiction",
		Language:    "English",
		Edition:     "1st",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.owner.ID, book.OwnerID)
	assert.Equal(suite.T(), models.BookStatusAvailable, book.Status)
	assert.True(suite.T(), strings.HasPrefix(qrCode, "data:image/png;base64,"))
}

func (suite *BookServiceTestSuite) TestCreateMissingFields() {
	_, _, err := suite.service.Create(suite.owner.ID, &CreateBookRequest{
		Title: "No Author",
	})
	assert.Error(suite.T(), err)
}

func (suite *BookServiceTestSuite) TestListFiltersUnavailable() {
	visible := suite.createBook("Dune", "Science Fiction")
	hidden := suite.createBook("Hidden", "Science Fiction")
	suite.db.Model(hidden).Update("status", models.BookStatusUnavailable)

	books, total, err := suite.service.List(utils.PaginationParams{Page: 1, Limit: 10})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Len(suite.T(), books, 1)
	assert.Equal(suite.T(), visible.ID, books[0].ID)
}

func (suite *BookServiceTestSuite) TestListSearch() {
	suite.createBook("The Left Hand of Darkness", "Science Fiction")
	suite.createBook("Pride and Prejudice", "Romance")

	books, total, err := suite.service.List(utils.PaginationParams{Page: 1, Limit: 10, Search: "Darkness"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Equal(suite.T(), "The Left Hand of Darkness", books[0].Title)

	_, total, err = suite.service.List(utils.PaginationParams{Page: 1, Limit: 10, Genre: "Romance"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
}

func (suite *BookServiceTestSuite) TestListForOwnerIncludesAllStatuses() {
	suite.createBook("Available", "Fiction")
	retired := suite.createBook("Retired", "Fiction")
	suite.db.Model(retired).Update("status", models.BookStatusUnavailable)

	books, err := suite.service.ListForOwner(suite.owner.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), books, 2)
}

func (suite *BookServiceTestSuite) TestUpdate() {
	book := suite.createBook("Old Title", "Fiction")

	newTitle := "New Title"
	updated, err := suite.service.Update(book.ID, suite.owner.ID, &UpdateBookRequest{
		Title: &newTitle,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Title", updated.Title)
	assert.Equal(suite.T(), "Some Author", updated.Author)
}

func (suite *BookServiceTestSuite) TestUpdateByNonOwner() {
	book := suite.createBook("Protected", "Fiction")

	newTitle := "Hijacked"
	_, err := suite.service.Update(book.ID, uuid.New(), &UpdateBookRequest{
		Title: &newTitle,
	})
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
}

func (suite *BookServiceTestSuite) TestDelete() {
	book := suite.createBook("Goodbye", "Fiction")

	assert.NoError(suite.T(), suite.service.Delete(book.ID, suite.owner.ID))

	reloaded, err := suite.service.Get(book.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookStatusUnavailable, reloaded.Status)
}

func (suite *BookServiceTestSuite) TestDeleteReservedBook() {
	book := suite.createBook("Reserved", "Fiction")
	suite.db.Model(book).Update("status", models.BookStatusPending)

	err := suite.service.Delete(book.ID, suite.owner.ID)
	assert.ErrorIs(suite.T(), err, ErrBookUnavailable)
}

func (suite *BookServiceTestSuite) TestGetNotFound() {
	_, err := suite.service.Get(uuid.New())
	assert.ErrorIs(suite.T(), err, ErrBookNotFound)
}

func TestBookServiceSuite(t *testing.T) {
	suite.Run(t, new(BookServiceTestSuite))
}
