package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EpicVN/ecommerce-auth/domain"
	"github.com/EpicVN/ecommerce-auth/internal/config"
	httpx "github.com/EpicVN/ecommerce-auth/internal/http"
	"github.com/EpicVN/ecommerce-auth/internal/http/handlers"
	"github.com/EpicVN/ecommerce-auth/internal/http/middleware"
	"github.com/EpicVN/ecommerce-auth/internal/infrastructure/auth"
	"github.com/EpicVN/ecommerce-auth/internal/infrastructure/database"
	"github.com/EpicVN/ecommerce-auth/internal/infrastructure/messaging"
	"github.com/EpicVN/ecommerce-auth/internal/infrastructure/notifications"
	"github.com/EpicVN/ecommerce-auth/internal/infrastructure/repositories"
	"github.com/EpicVN/ecommerce-auth/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	if err := database.SeedRoles(gdb); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordServiceWithCost(cfg.BcryptCost)
	tokenSvc := auth.NewJWTService(cfg.AccessSecret, cfg.RefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewResendService(cfg.ResendAPIKey, cfg.EmailFrom)

	var audit domain.AuditPublisher = messaging.LogPublisher{}
	if cfg.AMQPURL != "" {
		audit = messaging.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	roleRepo := repositories.NewRoleRepository(gdb)
	codeRepo := repositories.NewVerificationCodeRepository(gdb)
	deviceRepo := repositories.NewDeviceRepository(gdb)
	refreshRepo := repositories.NewRefreshTokenRepository(gdb)

	// Services
	otpSvc := services.NewOTPService(codeRepo, notificationSvc, rdb.Client, services.OTPConfig{
		Length:       cfg.OTPLength,
		TTL:          cfg.OTPTTL,
		ResendWindow: cfg.OTPResendWindow,
	})

	roleSvc := services.NewRoleService(roleRepo)
	// The client role must resolve at boot; a missing role is a deployment
	// error, not a per-request condition
	if _, err := roleSvc.ClientRoleID(context.Background()); err != nil {
		return fmt.Errorf("client role bootstrap failed: %w", err)
	}

	policySvc := services.NewPolicyService(cas.E)
	authSvc := services.NewAuthService(userRepo, deviceRepo, refreshRepo, roleSvc, passwordSvc, tokenSvc, otpSvc, audit)

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc)
	polH := &handlers.PolicyHandlers{PolicySvc: policySvc}
	guard := middleware.NewGuardMW(tokenSvc, cfg.SecretAPIKey)
	casbinMW := middleware.NewCasbinMW(policySvc)

	r := httpx.BuildRouter(authH, polH, guard, casbinMW)

	policies := policySvc.GetPolicies()
	if len(policies) == 0 {
		_ = policySvc.AddPolicy("role_admin", "/admin/*", "(GET|POST|DELETE)")
		_ = policySvc.AddPolicy("role_service", "/admin/*", "(GET|POST|DELETE)")
		_ = policySvc.AddPolicy("role_client", "/auth/me", "GET")
		_ = policySvc.AddPolicy("role_admin", "/auth/me", "GET")
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
