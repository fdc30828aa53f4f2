// Package handlers wires the HTTP surface: the auth API, the profile and
// admin relays, the OAuth entry points and the page renders.
package handlers

import (
	"net/http"

	"github.com/readbacklabs/readback-web/internal/autherr"
	"github.com/readbacklabs/readback-web/internal/config"
	"github.com/readbacklabs/readback-web/internal/infrastructure/backend"
	"github.com/readbacklabs/readback-web/internal/services/authz"
	"github.com/readbacklabs/readback-web/internal/services/credentials"
	"github.com/readbacklabs/readback-web/internal/services/oauthsession"
	"github.com/readbacklabs/readback-web/internal/services/resolver"
	"github.com/readbacklabs/readback-web/pkg/httpext"
)

type Handlers struct {
	cfg         *config.Config
	backend     *backend.Service
	credentials *credentials.Service
	resolver    *resolver.Service
	sessions    *oauthsession.Service
	authz       *authz.Service
}

func New(
	cfg *config.Config,
	backendService *backend.Service,
	credentialService *credentials.Service,
	resolverService *resolver.Service,
	sessionService *oauthsession.Service,
	authzService *authz.Service,
) *Handlers {
	return &Handlers{
		cfg:         cfg,
		backend:     backendService,
		credentials: credentialService,
		resolver:    resolverService,
		sessions:    sessionService,
		authz:       authzService,
	}
}

// writeAuthError maps a taxonomy error onto the JSON error contract. This
// is the only place status codes are derived from error kinds.
func writeAuthError(w http.ResponseWriter, err error) {
	e := autherr.From(err)

	status := autherr.HTTPStatus(e.Kind)
	if e.Code == "rate-limited" {
		status = http.StatusTooManyRequests
	}

	resp := httpext.ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
	if e.Kind == autherr.KindNoCredential || e.Kind == autherr.KindRenewalInvalid {
		resp.Error = "authentication required"
	}
	if e.Details != nil {
		resp.RetryAfter = e.Details["retry_after"]
	}

	httpext.JsonErrorWithDetails(w, status, resp)
}
