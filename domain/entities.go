package domain

import "time"

// UserStatus enumerates account lifecycle states
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusBlocked  UserStatus = "BLOCKED"
)

// VerificationPurpose enumerates what an OTP code was issued for
type VerificationPurpose string

const (
	PurposeRegister       VerificationPurpose = "REGISTER"
	PurposeForgotPassword VerificationPurpose = "FORGOT_PASSWORD"
	PurposeLogin2FA       VerificationPurpose = "LOGIN_2FA"
)

// RoleNameClient is the well-known default role assigned at registration
const RoleNameClient = "Client"

// User represents a user account
type User struct {
	ID           uint
	Email        string
	Name         string
	PasswordHash string
	PhoneNumber  string
	Avatar       *string
	TOTPSecret   *string
	Status       UserStatus
	RoleID       uint
	RoleName     string // populated by joined lookups only
	CreatedByID  *uint
	UpdatedByID  *uint
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward projection of a User with secret fields removed
type PublicUser struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	PhoneNumber string     `json:"phoneNumber"`
	Avatar      *string    `json:"avatar"`
	Status      UserStatus `json:"status"`
	RoleID      uint       `json:"roleId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Public strips the password hash and TOTP secret from a user record
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Avatar:      u.Avatar,
		Status:      u.Status,
		RoleID:      u.RoleID,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// Role represents an authorization role
type Role struct {
	ID          uint
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VerificationCode is an OTP row keyed by (email, code, purpose)
type VerificationCode struct {
	ID        uint
	Email     string
	Code      string
	Purpose   VerificationPurpose
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Device records the originating client of one login session
type Device struct {
	ID         uint
	UserID     uint
	UserAgent  string
	IP         string
	LastActive time.Time
	CreatedAt  time.Time
	IsActive   bool
}

// RefreshToken is a persisted single-use refresh credential. The signed
// token string itself is the primary key.
type RefreshToken struct {
	Token     string
	UserID    uint
	DeviceID  uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenPair is the result of a login or refresh
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterInput carries validated registration fields into the orchestrator
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	Code        string
}
