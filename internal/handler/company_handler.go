package handler

import (
	"github.com/gin-gonic/gin"

	"voucherhub/internal/service"
	"voucherhub/pkg/response"
)

type CompanyHandler struct {
	companyService service.CompanyService
}

func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

type CompanyRequest struct {
	Name    string `json:"name"`
	Acronym string `json:"acronym"`
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req.Name, req.Acronym)
	if err != nil {
		writeServiceError(c, err, "failed to create company")
		return
	}
	response.Created(c, company)
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list companies")
		return
	}
	response.Success(c, companies)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to load company")
		return
	}
	response.Success(c, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), id, req.Name, req.Acronym)
	if err != nil {
		writeServiceError(c, err, "failed to update company")
		return
	}
	response.Success(c, company)
}
