package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/readbacklabs/readback-web/pkg/httpext"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// HandleOAuthRedirect sends the browser to the provider's authorization
// page. The redirect URI points at the backend of record's own callback;
// the code/token exchange never touches this frontend.
func (h *Handlers) HandleOAuthRedirect(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["provider"]
	provider, ok := h.cfg.OAuth.Providers[name]
	if !ok {
		httpext.JsonError(w, "unknown provider", http.StatusNotFound)
		return
	}

	conf := &oauth2.Config{
		ClientID:     provider.ClientID,
		ClientSecret: provider.ClientSecret,
		RedirectURL:  h.cfg.OAuth.RedirectURL,
		Scopes:       provider.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  provider.AuthURL,
			TokenURL: provider.TokenURL,
		},
	}

	state := uuid.New().String()
	opts := []oauth2.AuthCodeOption{}
	if name == "google" {
		opts = append(opts, oauth2.SetAuthURLParam("prompt", "select_account"))
	}

	log.Debug().Str("provider", name).Msg("Redirecting to identity provider")
	http.Redirect(w, r, conf.AuthCodeURL(state, opts...), http.StatusFound)
}

// HandleOAuthLanding is the transitional page the backend's callback
// redirects to. It redeems the one-time hand-off token, establishes the
// third-party session and forwards the browser to the authenticated home.
func (h *Handlers) HandleOAuthLanding(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, "/login?error=oauth", http.StatusFound)
		return
	}

	exchange, err := h.backend.ExchangeOAuthToken(r.Context(), token)
	if err != nil {
		log.Warn().Err(err).Msg("OAuth hand-off exchange failed")
		http.Redirect(w, r, "/login?error=oauth", http.StatusFound)
		return
	}

	if err := h.sessions.Create(r.Context(), w, exchange.Provider, exchange.Access, exchange.IsSuperuser, exchange.IsStaff); err != nil {
		log.Error().Err(err).Msg("Failed to create third-party session")
		http.Redirect(w, r, "/login?error=oauth", http.StatusFound)
		return
	}

	h.renderTransition(w)
}
