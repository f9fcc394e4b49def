package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	// Create inserts a new user. A unique violation on email is translated
	// to ErrEmailAlreadyExists.
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByEmailWithRole returns the user with RoleName populated from the
	// joined role row.
	FindByEmailWithRole(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

// RoleRepository defines role lookups
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*Role, error)
}

// VerificationCodeRepository persists OTP codes keyed by (email, code, purpose)
type VerificationCodeRepository interface {
	Create(ctx context.Context, code *VerificationCode) error
	// Find returns the exact (email, code, purpose) match or ErrOTPInvalid.
	// Expiry is checked by the caller against wall-clock time.
	Find(ctx context.Context, email, code string, purpose VerificationPurpose) (*VerificationCode, error)
}

// DeviceUpdate is a partial update applied to a device row. Nil fields are
// left untouched.
type DeviceUpdate struct {
	UserAgent  *string
	IP         *string
	IsActive   *bool
	LastActive *time.Time
}

// DeviceRepository persists login devices
type DeviceRepository interface {
	Create(ctx context.Context, device *Device) error
	Update(ctx context.Context, deviceID uint, update DeviceUpdate) error
}

// RefreshTokenRepository persists refresh-token rows. Rows are exclusively
// owned by this store; the orchestrator never holds one beyond a single
// operation.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	// FindWithUserRole returns the row joined with its user and role name,
	// or ErrTokenRevoked when the token string is unknown.
	FindWithUserRole(ctx context.Context, token string) (*RefreshToken, *User, error)
	// DeleteReturning atomically removes the row and returns it. Zero rows
	// affected yields ErrTokenRevoked: the token was already redeemed (or
	// never issued). This conditional delete is the reuse-detection gate.
	DeleteReturning(ctx context.Context, token string) (*RefreshToken, error)
}

// AuthService defines the authentication orchestrator
type AuthService interface {
	SendOTP(ctx context.Context, email string, purpose VerificationPurpose) error
	Register(ctx context.Context, input RegisterInput) (*PublicUser, error)
	Login(ctx context.Context, email, password, userAgent, ip string) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken, userAgent, ip string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserProfile(ctx context.Context, userID uint) (*PublicUser, error)
}

// OTPService issues and checks one-time codes
type OTPService interface {
	// Issue generates a code, persists it with the configured TTL and
	// dispatches it to the notification gateway.
	Issue(ctx context.Context, email string, purpose VerificationPurpose) (*VerificationCode, error)
	// Check validates a submitted code against the store. Returns
	// ErrOTPInvalid on no match, ErrOTPExpired past the expiry instant.
	Check(ctx context.Context, email, code string, purpose VerificationPurpose) error
}

// RoleService resolves well-known role ids
type RoleService interface {
	// ClientRoleID returns the default customer role id, cached for the
	// lifetime of the process after the first successful resolution.
	ClientRoleID(ctx context.Context) (uint, error)
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// AccessTokenClaims are the verified claims of an access token
type AccessTokenClaims struct {
	UserID    uint   `json:"userId"`
	DeviceID  uint   `json:"deviceId"`
	RoleID    uint   `json:"roleId"`
	RoleName  string `json:"roleName"`
	TokenID   string `json:"uuid"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// RefreshTokenClaims are the verified claims of a refresh token
type RefreshTokenClaims struct {
	UserID    uint   `json:"userId"`
	TokenID   string `json:"uuid"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TokenService signs and verifies access/refresh token pairs
type TokenService interface {
	SignAccessToken(userID, deviceID, roleID uint, roleName string) (string, error)
	SignRefreshToken(userID uint) (string, error)
	VerifyAccessToken(token string) (*AccessTokenClaims, error)
	VerifyRefreshToken(token string) (*RefreshTokenClaims, error)
	// DecodeRefreshToken extracts claims without verifying the signature.
	// Only valid for tokens this service just signed.
	DecodeRefreshToken(token string) (*RefreshTokenClaims, error)
}

// NotificationService delivers OTP codes to users
type NotificationService interface {
	SendOTPEmail(ctx context.Context, email, code string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
