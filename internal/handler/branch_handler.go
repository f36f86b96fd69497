package handler

import (
	"github.com/gin-gonic/gin"

	"voucherhub/internal/service"
	"voucherhub/pkg/response"
)

type BranchHandler struct {
	branchService service.BranchService
}

func NewBranchHandler(branchService service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

type CreateBranchRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

func (h *BranchHandler) Create(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and location required")
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req.Name, req.Location)
	if err != nil {
		writeServiceError(c, err, "failed to create branch")
		return
	}
	response.Created(c, branch)
}

func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list branches")
		return
	}
	response.Success(c, branches)
}

func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	branch, err := h.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to load branch")
		return
	}
	response.Success(c, branch)
}
