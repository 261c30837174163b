package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/service"
	"library-backend/internal/shared"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// MemberHandler xử lý auth và member endpoints
type MemberHandler struct {
	service service.ServiceInterface
}

func NewMemberHandler(service service.ServiceInterface) *MemberHandler {
	return &MemberHandler{service: service}
}

// Register - POST /auth/register
func (h *MemberHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := h.bindJSON(c, &req); err != nil {
		return
	}

	member, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/members/"+member.ID.String())
	response.Success(c, http.StatusCreated, "Member registered successfully", member.ToResponse())
}

// Login - POST /auth/login
func (h *MemberHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := h.bindJSON(c, &req); err != nil {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

// Me - GET /members/me
func (h *MemberHandler) Me(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	member, err := h.service.GetMember(c.Request.Context(), p.MemberID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get profile successfully", member.ToResponse())
}

// ListMembers - GET /members?q= (librarian)
func (h *MemberHandler) ListMembers(c *gin.Context) {
	var req model.ListMembersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get members successfully", model.ToResponses(members))
}

// GetMember - GET /members/:id (librarian)
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid member id", nil)
		return
	}

	member, err := h.service.GetMember(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get member successfully", member.ToResponse())
}

// LiftSuspension - POST /members/:id/lift-suspension (librarian)
func (h *MemberHandler) LiftSuspension(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid member id", nil)
		return
	}

	member, err := h.service.LiftSuspension(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Suspension lifted", member.ToResponse())
}

func (h *MemberHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	// 400 Bad Request
	case errors.As(err, &validationErrs):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)

	// 401 Unauthorized
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error(), nil)

	// 404 Not Found
	case errors.Is(err, shared.ErrNotFound):
		response.NotFound(c, "Member not found")

	// 409 Conflict
	case errors.Is(err, model.ErrUsernameAlreadyExists):
		response.Error(c, http.StatusConflict, "USERNAME_TAKEN", err.Error(), nil)
	case errors.Is(err, model.ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_TAKEN", err.Error(), nil)
	case errors.Is(err, model.ErrOpenOverdueLoans):
		response.Error(c, http.StatusConflict, "OPEN_OVERDUE_LOANS", err.Error(), nil)

	// 403 Forbidden
	case errors.Is(err, model.ErrSuspensionLiftDisabled):
		response.Error(c, http.StatusForbidden, "SUSPENSION_LIFT_DISABLED", err.Error(), nil)
	case errors.Is(err, shared.ErrForbidden):
		response.Forbidden(c, "Librarian role required")

	// 429 Too Many Requests
	case errors.Is(err, model.ErrTooManyAttempts):
		response.Error(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", err.Error(), nil)

	default:
		logger.Error("member handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}

// bindJSON chỉ parse body; Validate() chạy ở service
func (h *MemberHandler) bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return err
	}
	return nil
}
