package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voucherhub/internal/service"
	"voucherhub/pkg/response"
)

type AttendantHandler struct {
	attendantService service.AttendantService
}

func NewAttendantHandler(attendantService service.AttendantService) *AttendantHandler {
	return &AttendantHandler{attendantService: attendantService}
}

type CreateAttendantRequest struct {
	Email    string `json:"email" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
	BranchID string `json:"branch_id" binding:"required"`
}

func (h *AttendantHandler) Create(c *gin.Context) {
	adminID, err := getPrincipalID(c)
	if err != nil {
		response.Unauthorized(c, "invalid admin context")
		return
	}

	var req CreateAttendantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		response.BadRequest(c, "invalid branch ID format")
		return
	}

	attendant, err := h.attendantService.CreateAttendant(c.Request.Context(), req.Email, req.Passcode, branchID, adminID)
	if err != nil {
		writeServiceError(c, err, "failed to create attendant")
		return
	}
	response.Created(c, attendant)
}

func (h *AttendantHandler) List(c *gin.Context) {
	branchID, ok := parseOptionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}
	attendants, err := h.attendantService.ListAttendants(c.Request.Context(), branchID)
	if err != nil {
		writeServiceError(c, err, "failed to list attendants")
		return
	}
	response.Success(c, attendants)
}

func (h *AttendantHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	attendant, err := h.attendantService.GetAttendant(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to load attendant")
		return
	}
	response.Success(c, attendant)
}
