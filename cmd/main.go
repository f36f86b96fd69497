package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"voucherhub/internal/config"
	"voucherhub/internal/handler"
	"voucherhub/internal/model"
	"voucherhub/internal/repository"
	"voucherhub/internal/service"
	jwtpkg "voucherhub/pkg/jwt"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. Connect to the database
	db, err := config.NewDB(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.AutoMigrate() {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize revocation store (Redis or in-memory)
	var revocations repository.RevocationStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		revocations = repository.NewRedisRevocationStore(redisClient)
		logger.Info("using Redis revocation store")
	case "memory":
		revocations = repository.NewMemoryRevocationStore()
		logger.Info("using in-memory revocation store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 6. Initialize repositories
	voucherRepo := repository.NewGormVoucherRepository(db)
	companyRepo := repository.NewGormCompanyRepository(db)
	branchRepo := repository.NewGormBranchRepository(db)
	attendantRepo := repository.NewGormAttendantRepository(db)
	adminRepo := repository.NewGormAdminRepository(db)

	// 7. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)

	// 8. Initialize services
	generator := service.NewCodeGenerator(service.NewSecureRand())
	voucherService := service.NewVoucherService(cfg.Voucher, voucherRepo, companyRepo, attendantRepo, generator, logger)
	companyService := service.NewCompanyService(companyRepo)
	branchService := service.NewBranchService(branchRepo)
	attendantService := service.NewAttendantService(attendantRepo, branchRepo)
	adminService := service.NewAdminService(adminRepo, logger)
	authService := service.NewAuthService(adminRepo, attendantRepo, revocations, jwtManager, logger)

	if err := adminService.EnsureBootstrapAdmin(context.Background(), cfg.Admin.BootstrapEmail, cfg.Admin.BootstrapPasscode); err != nil {
		logger.Fatal("failed to create bootstrap admin", zap.Error(err))
	}

	// 9. Setup router
	router := handler.SetupRouter(cfg, logger, jwtManager, revocations, handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Voucher:   handler.NewVoucherHandler(voucherService, companyService),
		Admin:     handler.NewAdminHandler(adminService),
		Company:   handler.NewCompanyHandler(companyService),
		Branch:    handler.NewBranchHandler(branchService),
		Attendant: handler.NewAttendantHandler(attendantService),
	})

	// 10. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 11. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
