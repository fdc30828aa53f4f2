// Package renewal exchanges the long-lived renewal credential for a fresh
// bearer credential at the backend of record.
package renewal

import (
	"context"
	"net/http"

	"github.com/readbacklabs/readback-web/internal/autherr"
	"github.com/readbacklabs/readback-web/internal/infrastructure/backend"
	"github.com/readbacklabs/readback-web/internal/services/credentials"
	"github.com/rs/zerolog/log"
)

type Service struct {
	backend     *backend.Service
	credentials *credentials.Service
}

func NewService(backendService *backend.Service, credentialService *credentials.Service) *Service {
	return &Service{
		backend:     backendService,
		credentials: credentialService,
	}
}

// Renew reads the renewal credential from the store and exchanges it for a
// new bearer credential. When the renewal credential is absent no network
// call is made. On any failure the store is left untouched; a rejected
// renewal credential is terminal for the session and is never retried with
// the same value.
func (s *Service) Renew(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	refresh := s.credentials.Renewal(r)
	if refresh == "" {
		log.Debug().Msg("No renewal credential present, skipping renewal")
		return "", autherr.NoCredential()
	}

	bearer, err := s.backend.Renew(ctx, refresh)
	if err != nil {
		if autherr.KindOf(err) == autherr.KindRenewalInvalid {
			log.Debug().Msg("Renewal credential rejected by backend")
		} else {
			log.Warn().Err(err).Msg("Renewal request failed")
		}
		return "", err
	}

	s.credentials.SetBearer(w, bearer)
	log.Debug().Msg("Bearer credential renewed")
	return bearer, nil
}
