package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/config"
	"github.com/sirupsen/logrus"
)

// DefaultTTL is how long a signed token stays valid
const DefaultTTL = 24 * time.Hour

var secret []byte
var audience string

// LoadSecret will load the signing secret and audience from the config
// this method should only be called once.
func LoadSecret() {
	cfg := config.Instance().JWT
	if cfg.Secret == "" {
		logrus.Fatal("jwt.secret is not configured")
	}

	SetSecret(cfg.Secret, cfg.Audience)
}

// SetSecret sets the signing secret and audience directly
func SetSecret(key, aud string) {
	secret = []byte(key)
	audience = aud
}

// Sign will sign a JWT for the player ID
func Sign(playerID string, ttl time.Duration) (string, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(now),
		ExpiresAt: jwtgo.NewNumericDate(now.Add(ttl)),
		Subject:   playerID,
	})

	return token.SignedString(secret)
}

// ValidPlayerID will validate a signed JWT and return its subject
// The subject is treated as an opaque player id
func ValidPlayerID(signedString string) (string, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return secret, nil
	})

	if err != nil {
		return "", err
	}

	if !token.Valid {
		logrus.Warn("token claims were not valid. did not expect to reach this code")
		return "", errors.New("claims were not valid")
	}

	claims, ok := token.Claims.(*jwtgo.RegisteredClaims)
	if !ok {
		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	if !containsAudience(claims.Audience, audience) {
		return "", errors.New("invalid audience")
	}

	if claims.Subject == "" {
		return "", errors.New("missing subject")
	}

	return claims.Subject, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
