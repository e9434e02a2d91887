// internal/handlers/book.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookswap/bookswap-api/internal/i18n"
	"github.com/bookswap/bookswap-api/internal/services"
	"github.com/bookswap/bookswap-api/internal/utils"
)

type BookHandler struct {
	bookService    *services.BookService
	storageService *services.StorageService
}

func NewBookHandler(bookService *services.BookService, storageService *services.StorageService) *BookHandler {
	return &BookHandler{
		bookService:    bookService,
		storageService: storageService,
	}
}

// POST /books
func (h *BookHandler) CreateBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	book, qrCode, err := h.bookService.Create(ownerID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBookCreated),
		"book":    book,
		"qr_code": qrCode,
	})
}

// GET /books
func (h *BookHandler) GetBooks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	books, total, err := h.bookService.List(params)
	if err != nil {
		serviceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(books, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /books/mine
func (h *BookHandler) GetMyBooks(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	books, err := h.bookService.ListForOwner(ownerID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"books": books,
	})
}

// GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "Invalid book ID", nil)
		return
	}

	book, err := h.bookService.Get(bookID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"book": book,
	})
}

// PUT /books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "Invalid book ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	book, err := h.bookService.Update(bookID, userID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBookUpdated),
		"book":    book,
	})
}

// DELETE /books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "Invalid book ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.bookService.Delete(bookID, userID); err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBookDeleted),
	})
}

// POST /books/upload-cover
func (h *BookHandler) UploadCover(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	if _, ok := actingUserID(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("cover")
	if err != nil {
		utils.BadRequestResponse(c, "", i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.UploadOptions{
		Folder:       "covers",
		MaxSize:      h.storageService.MaxCoverSize(),
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".webp"},
	})
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"upload":  result,
	})
}
