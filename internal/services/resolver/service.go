// Package resolver decides, per request, which credential source supplies
// the bearer credential for the backend of record: the first-party cookie
// store, the third-party OAuth session, or a renewal exchange. It also owns
// the single mid-flight fallback when the backend rejects a credential, so
// no call site re-implements the renew/retry chain.
package resolver

import (
	"context"
	"net/http"

	"github.com/readbacklabs/readback-web/internal/autherr"
	"github.com/readbacklabs/readback-web/internal/services/credentials"
	"github.com/readbacklabs/readback-web/internal/services/oauthsession"
	"github.com/readbacklabs/readback-web/internal/services/renewal"
	"github.com/rs/zerolog/log"
)

// Source names which credential source supplied the bearer.
type Source string

const (
	SourcePrimary    Source = "primary_store"
	SourceRenewed    Source = "renewed"
	SourceThirdParty Source = "third_party"
)

// Identity is the per-request resolution outcome. Never persisted.
type Identity struct {
	Bearer  string
	Source  Source
	Session *oauthsession.Session
}

type Service struct {
	credentials *credentials.Service
	renewal     *renewal.Service
	sessions    *oauthsession.Service
}

func NewService(credentialService *credentials.Service, renewalService *renewal.Service, sessionService *oauthsession.Service) *Service {
	return &Service{
		credentials: credentialService,
		renewal:     renewalService,
		sessions:    sessionService,
	}
}

// Resolve picks the initial credential source. Order: primary store first
// (cheapest, canonical for password accounts), then the third-party session
// (OAuth accounts never populate the primary store), then renewal (costs a
// round trip, but an expired bearer with a live renewal credential is the
// most common recoverable state). Renewal failures of any kind surface as
// NoCredential here.
func (s *Service) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Identity, error) {
	if bearer := s.credentials.Bearer(r); bearer != "" {
		return &Identity{Bearer: bearer, Source: SourcePrimary}, nil
	}

	if session, err := s.sessions.Get(ctx, r); err == nil && session != nil && session.Bearer != "" {
		return &Identity{Bearer: session.Bearer, Source: SourceThirdParty, Session: session}, nil
	}

	if bearer, err := s.renewal.Renew(ctx, w, r); err == nil {
		return &Identity{Bearer: bearer, Source: SourceRenewed}, nil
	}

	return nil, autherr.NoCredential()
}

// ResolveLocal is the cheap check used by the route guard: primary store
// then third-party session, never renewal.
func (s *Service) ResolveLocal(ctx context.Context, r *http.Request) *Identity {
	if bearer := s.credentials.Bearer(r); bearer != "" {
		return &Identity{Bearer: bearer, Source: SourcePrimary}
	}

	if session, err := s.sessions.Get(ctx, r); err == nil && session != nil && session.Bearer != "" {
		return &Identity{Bearer: session.Bearer, Source: SourceThirdParty, Session: session}
	}

	return nil
}

// Do resolves an identity and invokes call with it. When the backend rejects
// the credential mid-flight, the alternates are tried in order — renewal
// (unless it already supplied the credential), then the third-party session
// (unless it was the source, and only if its cached credential differs from
// the rejected one) — each at most once. Errors other than a credential
// rejection pass through unmodified and never trigger re-resolution.
func (s *Service) Do(ctx context.Context, w http.ResponseWriter, r *http.Request, call func(context.Context, *Identity) error) (*Identity, error) {
	identity, err := s.Resolve(ctx, w, r)
	if err != nil {
		return nil, err
	}

	err = call(ctx, identity)
	if err == nil {
		return identity, nil
	}
	if autherr.KindOf(err) != autherr.KindCredentialRejected {
		return identity, err
	}

	log.Debug().
		Str("source", string(identity.Source)).
		Msg("Bearer credential rejected mid-flight, trying alternates")
	original := err

	if identity.Source != SourceRenewed {
		if bearer, renewErr := s.renewal.Renew(ctx, w, r); renewErr == nil {
			alternate := &Identity{Bearer: bearer, Source: SourceRenewed}
			err = call(ctx, alternate)
			if err == nil {
				return alternate, nil
			}
			if autherr.KindOf(err) != autherr.KindCredentialRejected {
				return alternate, err
			}
		}
	}

	if identity.Source != SourceThirdParty {
		if session, sessErr := s.sessions.Get(ctx, r); sessErr == nil && session != nil &&
			session.Bearer != "" && session.Bearer != identity.Bearer {
			alternate := &Identity{Bearer: session.Bearer, Source: SourceThirdParty, Session: session}
			err = call(ctx, alternate)
			if err == nil {
				return alternate, nil
			}
			if autherr.KindOf(err) != autherr.KindCredentialRejected {
				return alternate, err
			}
		}
	}

	log.Debug().Msg("All credential sources exhausted")
	return nil, original
}
