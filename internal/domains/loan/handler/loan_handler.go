package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/loan/export"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// BorrowBook - POST /loans
// Member mượn cho chính mình; librarian truyền member_id
func (h *Handler) BorrowBook(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	memberID := p.MemberID
	if req.MemberID != "" {
		memberID = uuid.MustParse(req.MemberID)
	}
	bookID := uuid.MustParse(req.BookID)

	loan, err := h.service.BorrowBook(c.Request.Context(), memberID, bookID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/loans/"+loan.ID.String())
	response.Success(c, http.StatusCreated, model.MsgBorrowed, loan.ToResponse())
}

// ReturnBook - POST /loans/:id/return (librarian)
func (h *Handler) ReturnBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid loan id", nil)
		return
	}

	result, err := h.service.ReturnBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result.Message, result.ToResponse())
}

// GetLoan - GET /loans/:id
func (h *Handler) GetLoan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid loan id", nil)
		return
	}

	loan, err := h.service.GetLoan(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get loan successfully", loan.ToResponse())
}

// ListLoans - GET /loans?q=&open=&member_id=
func (h *Handler) ListLoans(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	loans, err := h.service.ListLoans(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get loans successfully", model.DetailsToResponses(loans))
}

// ExportLoans - GET /loans/export (librarian), cùng filter với ListLoans
func (h *Handler) ExportLoans(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	loans, err := h.service.ListLoans(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	workbook, err := export.BuildWorkbook(loans)
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("loans_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if _, err := workbook.WriteTo(c.Writer); err != nil {
		logger.Error("write loan export failed", err)
	}
}

func (h *Handler) bindFilter(c *gin.Context) (model.ListFilter, bool) {
	var req model.ListLoansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return model.ListFilter{}, false
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return model.ListFilter{}, false
	}
	return req.ToFilter(), true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	// 400
	case errors.As(err, &validationErrs):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)

	// 403
	case errors.Is(err, shared.ErrForbidden):
		response.Forbidden(c, "Access denied")
	case errors.Is(err, model.ErrMemberSuspended):
		response.Error(c, http.StatusForbidden, "MEMBER_SUSPENDED", model.MsgMemberSuspended, nil)

	// 404
	case errors.Is(err, model.ErrLoanNotFound):
		response.Error(c, http.StatusNotFound, "LOAN_NOT_FOUND", model.MsgLoanNotFound, nil)
	case errors.Is(err, shared.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)

	// 409
	case errors.Is(err, model.ErrNoCopiesAvailable):
		response.Error(c, http.StatusConflict, "NO_COPIES_AVAILABLE", model.MsgNoCopiesAvailable, nil)
	case errors.Is(err, model.ErrAlreadyReturned):
		response.Error(c, http.StatusConflict, "ALREADY_RETURNED", model.MsgAlreadyReturned, nil)

	// 503
	case errors.Is(err, shared.ErrTransactionFailure):
		logger.Error("loan transaction failed", err)
		response.Error(c, http.StatusServiceUnavailable, "TRANSACTION_FAILURE", "Service temporarily unavailable, please retry", nil)

	default:
		logger.Error("loan handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
