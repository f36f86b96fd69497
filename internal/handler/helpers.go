package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voucherhub/internal/handler/middleware"
	"voucherhub/internal/service"
	jwtpkg "voucherhub/pkg/jwt"
	"voucherhub/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func getClaims(c *gin.Context) (*jwtpkg.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// getPrincipalID returns the authenticated admin's or attendant's id.
func getPrincipalID(c *gin.Context) (uuid.UUID, error) {
	claims, err := getClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.SubjectID()
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUIDQuery returns nil when the query parameter is absent.
func parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name+" format")
		return nil, false
	}
	return &id, true
}

// writeServiceError maps service errors to HTTP responses.
func writeServiceError(c *gin.Context, err error, fallback string) {
	var transitionErr *service.TransitionError
	switch {
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, response.APIResponse{
			Code:    409,
			Message: transitionErr.Error(),
			Data:    gin.H{"status": transitionErr.Status},
		})
	case errors.Is(err, service.ErrVoucherNotFound),
		errors.Is(err, service.ErrCompanyNotFound),
		errors.Is(err, service.ErrAttendantNotFound),
		errors.Is(err, service.ErrBranchNotFound),
		errors.Is(err, service.ErrAdminNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidCount):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAcronymTaken),
		errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, fallback)
	}
}
