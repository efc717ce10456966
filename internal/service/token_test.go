package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret)
	userID, sessionID := uuid.New(), uuid.New()

	token, err := m.Issue(userID, sessionID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != sessionID {
		t.Fatalf("sid = %s", claims.SessionID)
	}
	if got, _ := claims.UserID(); got != userID {
		t.Fatalf("sub = %s", got)
	}
}

func TestTokenManagerRejects(t *testing.T) {
	m := NewTokenManager(testSecret)
	userID, sessionID := uuid.New(), uuid.New()

	expired, _ := m.Issue(userID, sessionID, time.Now().Add(-time.Minute))
	otherKey, _ := NewTokenManager("a-completely-different-secret-key-value").Issue(userID, sessionID, time.Now().Add(time.Hour))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		SessionID:        sessionID,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, Subject: userID.String()},
	}).SignedString([]byte(testSecret))

	wrongIssuer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))

	tests := map[string]string{
		"expired":      expired,
		"other key":    otherKey,
		"alg none":     unsigned,
		"no expiry":    noExpiry,
		"wrong issuer": wrongIssuer,
		"malformed":    "abc.def.ghi",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Parse(token); err != ErrInvalidToken {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
