package handler

import (
	"github.com/gin-gonic/gin"

	"voucherhub/internal/service"
	"voucherhub/pkg/response"
)

// AdminHandler manages admin accounts.
type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
}

func (h *AdminHandler) Create(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	admin, err := h.adminService.CreateAdmin(c.Request.Context(), req.Email, req.Passcode)
	if err != nil {
		writeServiceError(c, err, "failed to create admin")
		return
	}
	response.Created(c, admin)
}

func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.adminService.ListAdmins(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list admins")
		return
	}
	response.Success(c, admins)
}
