package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// are signed with independent secrets so a leaked access secret cannot mint
// refresh tokens.
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// SignAccessToken implements domain.TokenService
func (j *JWTServiceImpl) SignAccessToken(userID, deviceID, roleID uint, roleName string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":   userID,
		"deviceId": deviceID,
		"roleId":   roleID,
		"roleName": roleName,
		"uuid":     uuid.NewString(),
		"iss":      j.issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(j.accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.accessSecret)
}

// SignRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) SignRefreshToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"uuid":   uuid.NewString(),
		"iss":    j.issuer,
		"iat":    now.Unix(),
		"exp":    now.Add(j.refreshTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.refreshSecret)
}

// VerifyAccessToken implements domain.TokenService
func (j *JWTServiceImpl) VerifyAccessToken(tokenString string) (*domain.AccessTokenClaims, error) {
	claims, err := j.parse(tokenString, j.accessSecret)
	if err != nil {
		return nil, err
	}

	userID, ok := numClaim(claims, "userId")
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	deviceID, ok := numClaim(claims, "deviceId")
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	roleID, ok := numClaim(claims, "roleId")
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	roleName, ok := claims["roleName"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.AccessTokenClaims{
		UserID:   uint(userID),
		DeviceID: uint(deviceID),
		RoleID:   uint(roleID),
		RoleName: roleName,
	}
	out.TokenID, _ = claims["uuid"].(string)
	if iat, ok := numClaim(claims, "iat"); ok {
		out.IssuedAt = int64(iat)
	}
	if exp, ok := numClaim(claims, "exp"); ok {
		out.ExpiresAt = int64(exp)
	}
	return out, nil
}

// VerifyRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) VerifyRefreshToken(tokenString string) (*domain.RefreshTokenClaims, error) {
	claims, err := j.parse(tokenString, j.refreshSecret)
	if err != nil {
		return nil, err
	}
	return refreshClaims(claims)
}

// DecodeRefreshToken implements domain.TokenService. Signature is not
// checked: the only caller is generateTokens, which decodes a token it
// signed a moment earlier to learn the expiry claim.
func (j *JWTServiceImpl) DecodeRefreshToken(tokenString string) (*domain.RefreshTokenClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return refreshClaims(claims)
}

func (j *JWTServiceImpl) parse(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	exp, ok := numClaim(claims, "exp")
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenInvalid
	}

	return claims, nil
}

func refreshClaims(claims jwt.MapClaims) (*domain.RefreshTokenClaims, error) {
	userID, ok := numClaim(claims, "userId")
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.RefreshTokenClaims{UserID: uint(userID)}
	out.TokenID, _ = claims["uuid"].(string)
	if iat, ok := numClaim(claims, "iat"); ok {
		out.IssuedAt = int64(iat)
	}
	if exp, ok := numClaim(claims, "exp"); ok {
		out.ExpiresAt = int64(exp)
	}
	return out, nil
}

// numClaim reads a numeric claim; encoding/json decodes all JSON numbers
// into float64.
func numClaim(claims jwt.MapClaims, key string) (float64, bool) {
	v, ok := claims[key].(float64)
	return v, ok
}
