package auth

import (
	"testing"
	"time"

	"github.com/EpicVN/ecommerce-auth/domain"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) domain.TokenService {
	return NewJWTService("access-secret", "refresh-secret", "test-issuer", accessTTL, refreshTTL)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, time.Hour)

	token, err := svc.SignAccessToken(42, 9, 7, domain.RoleNameClient)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.DeviceID != 9 || claims.RoleID != 7 {
		t.Errorf("unexpected ids: %+v", claims)
	}
	if claims.RoleName != domain.RoleNameClient {
		t.Errorf("expected role %q, got %q", domain.RoleNameClient, claims.RoleName)
	}
	if claims.TokenID == "" {
		t.Error("expected a token id claim")
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Errorf("expiry %d not after issue %d", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, time.Hour)

	token, err := svc.SignRefreshToken(42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := svc.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}

	want := time.Now().Add(time.Hour).Unix()
	if claims.ExpiresAt < want-5 || claims.ExpiresAt > want+5 {
		t.Errorf("expiry %d not near %d", claims.ExpiresAt, want)
	}
}

func TestTokenRejection(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, time.Hour)
	other := NewJWTService("other-access", "other-refresh", "test-issuer", 15*time.Minute, time.Hour)

	accessToken, err := svc.SignAccessToken(42, 9, 7, domain.RoleNameClient)
	if err != nil {
		t.Fatalf("sign access: %v", err)
	}
	refreshToken, err := svc.SignRefreshToken(42)
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}

	tests := []struct {
		name  string
		check func() error
	}{
		{"garbage access token", func() error { _, err := svc.VerifyAccessToken("not.a.jwt"); return err }},
		{"garbage refresh token", func() error { _, err := svc.VerifyRefreshToken("not.a.jwt"); return err }},
		{"wrong access secret", func() error { _, err := other.VerifyAccessToken(accessToken); return err }},
		{"wrong refresh secret", func() error { _, err := other.VerifyRefreshToken(refreshToken); return err }},
		{"refresh secret cannot verify access token", func() error { _, err := svc.VerifyRefreshToken(accessToken); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.check(); err != domain.ErrTokenInvalid {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestJWTService(-time.Minute, -time.Minute)

	token, err := svc.SignRefreshToken(42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.VerifyRefreshToken(token); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDecodeRefreshToken(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, time.Hour)

	token, err := svc.SignRefreshToken(42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	decoded, err := svc.DecodeRefreshToken(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	verified, err := svc.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if decoded.UserID != verified.UserID || decoded.ExpiresAt != verified.ExpiresAt || decoded.TokenID != verified.TokenID {
		t.Errorf("decode and verify disagree: %+v vs %+v", decoded, verified)
	}

	if _, err := svc.DecodeRefreshToken("not.a.jwt"); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, time.Hour)

	a, err := svc.SignRefreshToken(42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	b, err := svc.SignRefreshToken(42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if a == b {
		t.Error("two refresh tokens for the same user must differ")
	}
}
