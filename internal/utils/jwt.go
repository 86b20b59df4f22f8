package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig carries the signing material for a token pair. Access and
// refresh tokens are signed with independent secrets and lifetimes.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenPair is an access/refresh JWT pair as returned to clients. Both
// strings carry the "Bearer " prefix.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

const bearerPrefix = "Bearer "

// NewTokenPair signs two HS256 JWTs for a user: a short-lived access token
// and a long-lived refresh token. Both carry the same claims — sub (user
// id), username (email), exp and iat — and differ only in secret and TTL.
func NewTokenPair(userID, email string, cfg TokenConfig) (TokenPair, error) {
	now := time.Now().UTC()

	access, err := signToken(userID, email, cfg.AccessSecret, now, cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := signToken(userID, email, cfg.RefreshSecret, now, cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  bearerPrefix + access,
		RefreshToken: bearerPrefix + refresh,
	}, nil
}

func signToken(userID, email, secret string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": email,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSubject verifies an HS256 JWT (with or without the "Bearer "
// prefix) against the given secret and returns its sub claim.
func ParseSubject(token, secret string) (string, error) {
	raw := token
	if len(raw) > len(bearerPrefix) && raw[:len(bearerPrefix)] == bearerPrefix {
		raw = raw[len(bearerPrefix):]
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing subject")
	}
	return sub, nil
}

// HashRefreshRaw returns the SHA-256 hash of a refresh token as a hex
// string. Only the hash is cached, so a leaked cache entry cannot be
// replayed as a token.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
