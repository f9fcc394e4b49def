package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	deviceRepo  domain.DeviceRepository
	refreshRepo domain.RefreshTokenRepository
	roleSvc     domain.RoleService
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	audit       domain.AuditPublisher
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	deviceRepo domain.DeviceRepository,
	refreshRepo domain.RefreshTokenRepository,
	roleSvc domain.RoleService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	audit domain.AuditPublisher,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		deviceRepo:  deviceRepo,
		refreshRepo: refreshRepo,
		roleSvc:     roleSvc,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		audit:       audit,
	}
}

// SendOTP implements domain.AuthService. Registration-purpose OTP only makes
// sense for addresses without an account, so existence is rejected up front;
// the unique index on users.email remains the source of truth for races.
// Other purposes target an existing mailbox and skip the check.
func (s *AuthServiceImpl) SendOTP(ctx context.Context, email string, purpose domain.VerificationPurpose) error {
	email = normalizeEmail(email)

	if purpose == domain.PurposeRegister {
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return domain.WithField(domain.ErrEmailAlreadyExists, "email")
		} else if err != domain.ErrUserNotFound {
			return fmt.Errorf("failed to look up email: %w", err)
		}
	}

	if _, err := s.otpSvc.Issue(ctx, email, purpose); err != nil {
		s.publish(ctx, domain.NewAuditEvent(domain.OTPDeliveryFailedEvent).WithUser(0, email).WithError(err))
		return err
	}

	s.publish(ctx, domain.NewAuditEvent(domain.OTPRequestedEvent).WithUser(0, email))
	return nil
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.PublicUser, error) {
	input.Email = normalizeEmail(input.Email)

	roleID, err := s.roleSvc.ClientRoleID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client role: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.otpSvc.Check(ctx, input.Email, input.Code, domain.PurposeRegister); err != nil {
		return nil, domain.WithField(err, "code")
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		PhoneNumber:  input.PhoneNumber,
		Status:       domain.UserStatusActive,
		RoleID:       roleID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == domain.ErrEmailAlreadyExists {
			return nil, domain.WithField(err, "email")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publish(ctx, domain.NewAuditEvent(domain.UserRegisteredEvent).WithUser(user.ID, user.Email))
	return user.Public(), nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, userAgent, ip string) (*domain.TokenPair, error) {
	user, err := s.userRepo.FindByEmailWithRole(ctx, normalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.WithField(domain.ErrAccountNotFound, "email")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.publish(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent).
			WithUser(user.ID, user.Email).WithClient(userAgent, ip).WithError(domain.ErrInvalidCredentials))
		return nil, domain.WithField(domain.ErrInvalidCredentials, "password")
	}

	// Every login gets a fresh device row; devices are not deduplicated
	device := &domain.Device{UserID: user.ID, UserAgent: userAgent, IP: ip}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	pair, err := s.generateTokens(ctx, user.ID, device.ID, user.RoleID, user.RoleName)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.NewAuditEvent(domain.UserLoginEvent).
		WithUser(user.ID, user.Email).WithDevice(device.ID).WithClient(userAgent, ip))
	return pair, nil
}

// RefreshToken implements domain.AuthService. Redeeming is one-time: the
// conditional delete of the old row is the commit point, so a replayed token
// fails there even when two calls race past the lookup.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken, userAgent, ip string) (*domain.TokenPair, error) {
	if _, err := s.tokenSvc.VerifyRefreshToken(refreshToken); err != nil {
		return nil, domain.ErrTokenInvalid
	}

	row, user, err := s.refreshRepo.FindWithUserRole(ctx, refreshToken)
	if err != nil {
		if err == domain.ErrTokenRevoked {
			s.publish(ctx, domain.NewAuditEvent(domain.TokenReuseDetectedEvent).WithClient(userAgent, ip).WithError(err))
		}
		return nil, s.collapseTokenErr(err)
	}

	if _, err := s.refreshRepo.DeleteReturning(ctx, refreshToken); err != nil {
		if err == domain.ErrTokenRevoked {
			s.publish(ctx, domain.NewAuditEvent(domain.TokenReuseDetectedEvent).
				WithUser(user.ID, user.Email).WithDevice(row.DeviceID).WithClient(userAgent, ip).WithError(err))
		}
		return nil, s.collapseTokenErr(err)
	}

	var pair *domain.TokenPair
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		now := time.Now()
		return s.deviceRepo.Update(gctx, row.DeviceID, domain.DeviceUpdate{
			UserAgent:  &userAgent,
			IP:         &ip,
			LastActive: &now,
		})
	})
	g.Go(func() error {
		var err error
		pair, err = s.generateTokens(gctx, user.ID, row.DeviceID, user.RoleID, user.RoleName)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.collapseTokenErr(err)
	}

	s.publish(ctx, domain.NewAuditEvent(domain.TokenRefreshedEvent).
		WithUser(user.ID, user.Email).WithDevice(row.DeviceID).WithClient(userAgent, ip))
	return pair, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.tokenSvc.VerifyRefreshToken(refreshToken); err != nil {
		return domain.ErrTokenInvalid
	}

	row, err := s.refreshRepo.DeleteReturning(ctx, refreshToken)
	if err != nil {
		return s.collapseTokenErr(err)
	}

	inactive := false
	if err := s.deviceRepo.Update(ctx, row.DeviceID, domain.DeviceUpdate{IsActive: &inactive}); err != nil {
		return s.collapseTokenErr(err)
	}

	s.publish(ctx, domain.NewAuditEvent(domain.UserLogoutEvent).WithUser(row.UserID, "").WithDevice(row.DeviceID))
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// generateTokens signs both tokens concurrently, then persists the refresh
// token under the expiry decoded from its own claims. Persistence must wait
// for the refresh token string to exist; the access token only needs to be
// signed before the pair is returned.
func (s *AuthServiceImpl) generateTokens(ctx context.Context, userID, deviceID, roleID uint, roleName string) (*domain.TokenPair, error) {
	var accessToken, refreshToken string

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accessToken, err = s.tokenSvc.SignAccessToken(userID, deviceID, roleID, roleName)
		return err
	})
	g.Go(func() error {
		var err error
		refreshToken, err = s.tokenSvc.SignRefreshToken(userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to sign tokens: %w", err)
	}

	// Just signed, trusted by construction: decode without re-verifying
	claims, err := s.tokenSvc.DecodeRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decode refresh token: %w", err)
	}

	if err := s.refreshRepo.Create(ctx, &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    userID,
		DeviceID:  deviceID,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// normalizeEmail lowercases an address so one mailbox maps to one account
// regardless of the casing the caller typed.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// collapseTokenErr keeps recognized domain errors and downgrades everything
// else to ErrUnauthorized so token paths never leak internal failure detail.
func (s *AuthServiceImpl) collapseTokenErr(err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	return domain.ErrUnauthorized
}

func (s *AuthServiceImpl) publish(ctx context.Context, event *domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		log.Printf("AUDIT_PUBLISH_FAILED: type=%s error=%v", event.EventType, err)
	}
}
