// Package authz answers the elevated-privilege question for a resolved
// identity. It is a UX optimisation only; the backend of record enforces
// authorization independently.
package authz

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/readbacklabs/readback-web/internal/services/resolver"
	"github.com/rs/zerolog/log"
)

// BearerClaims are the claims embedded in a bearer credential by the
// backend of record.
type BearerClaims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
}

type Service struct {
	signingKey []byte
}

func NewService(signingKey []byte) *Service {
	return &Service{signingKey: signingKey}
}

// IsElevated reports whether the identity carries the elevated-privilege
// flag. Third-party sessions answer from their cached flag; otherwise the
// bearer credential's claims are decoded. Any decode failure — bad
// signature, malformed token, unexpected algorithm — means false. Never
// panics past this boundary.
func (s *Service) IsElevated(identity *resolver.Identity) bool {
	if identity == nil {
		return false
	}

	if identity.Source == resolver.SourceThirdParty && identity.Session != nil {
		return identity.Session.Elevated
	}

	claims, err := s.decode(identity.Bearer)
	if err != nil {
		log.Debug().Err(err).Msg("Bearer claim decode failed, treating as not elevated")
		return false
	}
	return claims.IsSuperuser
}

// Decode returns the bearer credential's embedded claims. Only HS256 is
// accepted; tokens signed with any other algorithm are rejected outright.
func (s *Service) Decode(bearer string) (*BearerClaims, error) {
	return s.decode(bearer)
}

func (s *Service) decode(bearer string) (*BearerClaims, error) {
	claims := &BearerClaims{}
	token, err := jwt.ParseWithClaims(bearer, claims, func(token *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
