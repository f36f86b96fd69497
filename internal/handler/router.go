package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voucherhub/internal/config"
	"voucherhub/internal/handler/middleware"
	"voucherhub/internal/repository"
	jwtpkg "voucherhub/pkg/jwt"
)

type Handlers struct {
	Auth      *AuthHandler
	Voucher   *VoucherHandler
	Admin     *AdminHandler
	Company   *CompanyHandler
	Branch    *BranchHandler
	Attendant *AttendantHandler
}

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	revocations repository.RevocationStore,
	h Handlers,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authn := middleware.JWTAuth(jwtManager, revocations, logger)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/admin/login", h.Auth.AdminLogin)
		public.POST("/auth/attendant/login", h.Auth.AttendantLogin)
		public.POST("/vouchers/verify/:code", h.Voucher.Verify)
	}

	// Any authenticated principal
	protected := r.Group("/api/v1")
	protected.Use(authn)
	{
		protected.POST("/auth/logout", h.Auth.Logout)
	}

	// Attendant routes: redemption is attributed to the token's subject.
	attendant := r.Group("/api/v1")
	attendant.Use(authn, middleware.RequireRole(jwtpkg.RoleAttendant))
	{
		attendant.POST("/vouchers/use/:code", h.Voucher.Use)
	}

	// Admin routes (JWT + admin role)
	admin := r.Group("/api/v1")
	admin.Use(authn, middleware.RequireRole(jwtpkg.RoleAdmin))
	{
		admin.POST("/vouchers/create", h.Voucher.Create)
		admin.POST("/vouchers/batch", h.Voucher.CreateBatch)
		admin.POST("/vouchers/invalidate/:code", h.Voucher.Invalidate)
		admin.POST("/vouchers/revert/:code", h.Voucher.Revert)
		admin.GET("/vouchers", h.Voucher.List)
		admin.GET("/vouchers/stats", h.Voucher.Stats)
		admin.GET("/vouchers/export", h.Voucher.Export)
		admin.GET("/vouchers/:id", h.Voucher.Get)

		admin.POST("/admins", h.Admin.Create)
		admin.GET("/admins", h.Admin.List)

		admin.POST("/companies", h.Company.Create)
		admin.GET("/companies", h.Company.List)
		admin.GET("/companies/:id", h.Company.Get)
		admin.PUT("/companies/:id", h.Company.Update)
		admin.GET("/companies/:id/vouchers", h.Voucher.ListByCompany)
		admin.GET("/companies/:id/stats", h.Voucher.CompanyStats)

		admin.POST("/branches", h.Branch.Create)
		admin.GET("/branches", h.Branch.List)
		admin.GET("/branches/:id", h.Branch.Get)

		admin.POST("/attendants", h.Attendant.Create)
		admin.GET("/attendants", h.Attendant.List)
		admin.GET("/attendants/:id", h.Attendant.Get)
	}

	return r
}
