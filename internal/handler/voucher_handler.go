package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voucherhub/internal/export"
	"voucherhub/internal/model"
	"voucherhub/internal/repository"
	"voucherhub/internal/service"
	"voucherhub/pkg/response"
)

type VoucherHandler struct {
	voucherService service.VoucherService
	companyService service.CompanyService
}

func NewVoucherHandler(voucherService service.VoucherService, companyService service.CompanyService) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucherService,
		companyService: companyService,
	}
}

type CreateVoucherRequest struct {
	CompanyID string `json:"company_id" binding:"required"`
}

type CreateBatchRequest struct {
	CompanyID string `json:"company_id" binding:"required"`
	Count     int    `json:"count"`
}

// Create issues a single voucher.
func (h *VoucherHandler) Create(c *gin.Context) {
	adminID, err := getPrincipalID(c)
	if err != nil {
		response.Unauthorized(c, "invalid admin context")
		return
	}

	var req CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		response.BadRequest(c, "invalid company ID format")
		return
	}

	voucher, err := h.voucherService.Issue(c.Request.Context(), companyID, adminID)
	if err != nil {
		writeServiceError(c, err, "failed to create voucher")
		return
	}
	response.Created(c, voucher)
}

// CreateBatch issues count vouchers atomically.
func (h *VoucherHandler) CreateBatch(c *gin.Context) {
	adminID, err := getPrincipalID(c)
	if err != nil {
		response.Unauthorized(c, "invalid admin context")
		return
	}

	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		response.BadRequest(c, "invalid company ID format")
		return
	}

	vouchers, err := h.voucherService.IssueBatch(c.Request.Context(), companyID, req.Count, adminID)
	if err != nil {
		writeServiceError(c, err, "failed to create voucher batch")
		return
	}
	response.Created(c, gin.H{"count": len(vouchers), "vouchers": vouchers})
}

// Verify reports a voucher's status without using it. Public.
func (h *VoucherHandler) Verify(c *gin.Context) {
	result, err := h.voucherService.Verify(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeServiceError(c, err, "failed to verify voucher")
		return
	}
	response.Success(c, result)
}

// Use redeems a voucher on behalf of the authenticated attendant.
func (h *VoucherHandler) Use(c *gin.Context) {
	attendantID, err := getPrincipalID(c)
	if err != nil {
		response.Unauthorized(c, "invalid attendant context")
		return
	}

	result, err := h.voucherService.Use(c.Request.Context(), c.Param("code"), attendantID)
	if err != nil {
		writeServiceError(c, err, "failed to use voucher")
		return
	}
	response.Success(c, result)
}

func (h *VoucherHandler) Invalidate(c *gin.Context) {
	adminID, err := getPrincipalID(c)
	if err != nil {
		response.Unauthorized(c, "invalid admin context")
		return
	}

	if err := h.voucherService.Invalidate(c.Request.Context(), c.Param("code"), adminID); err != nil {
		writeServiceError(c, err, "failed to invalidate voucher")
		return
	}
	response.Success(c, gin.H{"message": "voucher invalidated"})
}

func (h *VoucherHandler) Revert(c *gin.Context) {
	adminID, err := getPrincipalID(c)
	if err != nil {
		response.Unauthorized(c, "invalid admin context")
		return
	}

	if err := h.voucherService.Revert(c.Request.Context(), c.Param("code"), adminID); err != nil {
		writeServiceError(c, err, "failed to revert voucher")
		return
	}
	response.Success(c, gin.H{"message": "voucher usage reverted"})
}

func (h *VoucherHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	voucher, err := h.voucherService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to load voucher")
		return
	}
	response.Success(c, voucher)
}

func (h *VoucherHandler) List(c *gin.Context) {
	filter, ok := bindVoucherFilter(c)
	if !ok {
		return
	}
	vouchers, err := h.voucherService.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "failed to list vouchers")
		return
	}
	response.Success(c, vouchers)
}

// ListByCompany serves /companies/:id/vouchers.
func (h *VoucherHandler) ListByCompany(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	vouchers, err := h.voucherService.List(c.Request.Context(), repository.VoucherFilter{CompanyID: &companyID})
	if err != nil {
		writeServiceError(c, err, "failed to list vouchers")
		return
	}
	response.Success(c, vouchers)
}

func (h *VoucherHandler) Stats(c *gin.Context) {
	companyID, ok := parseOptionalUUIDQuery(c, "company_id")
	if !ok {
		return
	}
	h.writeStats(c, companyID)
}

// CompanyStats serves /companies/:id/stats.
func (h *VoucherHandler) CompanyStats(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	h.writeStats(c, &companyID)
}

func (h *VoucherHandler) writeStats(c *gin.Context, companyID *uuid.UUID) {
	stats, err := h.voucherService.Stats(c.Request.Context(), companyID)
	if err != nil {
		writeServiceError(c, err, "failed to compute voucher stats")
		return
	}
	response.Success(c, stats)
}

// Export streams the filtered vouchers as an xlsx workbook.
func (h *VoucherHandler) Export(c *gin.Context) {
	filter, ok := bindVoucherFilter(c)
	if !ok {
		return
	}
	vouchers, err := h.voucherService.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "failed to list vouchers")
		return
	}

	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list companies")
		return
	}
	names := make(map[string]string, len(companies))
	for _, company := range companies {
		names[company.ID.String()] = company.Name
	}

	filename := fmt.Sprintf("vouchers-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", export.ContentType)
	c.Status(http.StatusOK)
	if err := export.WriteVouchers(c.Writer, vouchers, names); err != nil {
		_ = c.Error(err)
	}
}

func bindVoucherFilter(c *gin.Context) (repository.VoucherFilter, bool) {
	var query struct {
		Status string `form:"status"`
		Limit  int    `form:"limit"`
		Offset int    `form:"offset"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return repository.VoucherFilter{}, false
	}
	companyID, ok := parseOptionalUUIDQuery(c, "company_id")
	if !ok {
		return repository.VoucherFilter{}, false
	}
	return repository.VoucherFilter{
		CompanyID: companyID,
		Status:    model.VoucherStatus(query.Status),
		Limit:     query.Limit,
		Offset:    query.Offset,
	}, true
}
