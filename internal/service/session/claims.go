package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
)

// FallbackRole is assumed when the backend token carries no role claim.
// The legacy dashboard hardcoded it for every login.
const FallbackRole = "Super Admin"

// profileFromToken decodes the backend JWT without verifying its
// signature; verification is the backend's job, the gateway only wants
// the identity claims. Any parse failure falls back to the legacy
// profile shape.
func profileFromToken(token, username string) *models.UserProfile {
	profile := &models.UserProfile{
		ID:       1,
		Username: username,
		Role:     FallbackRole,
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return profile
	}

	if v, ok := claims["id"].(float64); ok {
		profile.ID = int(v)
	}
	for _, key := range []string{"username", "name", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			profile.Username = v
			break
		}
	}
	if v, ok := claims["role"].(string); ok && v != "" {
		profile.Role = v
	}

	return profile
}
