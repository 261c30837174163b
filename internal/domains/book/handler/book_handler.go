package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /books?q=
func (h *Handler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get books successfully", model.ToResponses(books))
}

// GetBook - GET /books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id", nil)
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get book successfully", book.ToResponse())
}

// CreateBook - POST /books (librarian)
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/books/"+book.ID.String())
	response.Success(c, http.StatusCreated, "Book created successfully", book.ToResponse())
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)
	case errors.Is(err, model.ErrInvalidCopies):
		response.BadRequest(c, err.Error(), nil)
	case errors.Is(err, shared.ErrNotFound):
		response.NotFound(c, "Book not found")
	default:
		logger.Error("book handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
