package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/readbacklabs/readback-web/internal/infrastructure/backend"
	"github.com/readbacklabs/readback-web/internal/services/validate"
	"github.com/readbacklabs/readback-web/pkg/httpext"
	"github.com/rs/zerolog/log"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// HandleSignIn exchanges email/password for the credential cookie pair.
// Failures carry a machine-readable code (invalid-credentials, rate-limited,
// account-not-verified) so the UI can render targeted guidance.
func (h *Handlers) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Credentials(req.Email, req.Password); err != nil {
		writeAuthError(w, err)
		return
	}

	tokens, err := h.backend.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Debug().Err(err).Msg("Sign-in rejected")
		writeAuthError(w, err)
		return
	}

	h.credentials.Set(w, tokens.Access, tokens.Refresh)
	httpext.Json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleSignOut clears both credential cookies and any third-party session.
func (h *Handlers) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	h.credentials.Clear(w)
	h.sessions.Clear(r.Context(), w, r)
	httpext.Json(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// HandleSignUp relays a registration; the account stays pending until the
// activation email is confirmed.
func (h *Handlers) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Email(req.Email); err != nil {
		writeAuthError(w, err)
		return
	}
	if err := validate.Username(req.Username); err != nil {
		writeAuthError(w, err)
		return
	}
	if err := validate.Password(req.Password); err != nil {
		writeAuthError(w, err)
		return
	}

	err := h.backend.SignUp(r.Context(), backend.SignUpRequest{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpext.Json(w, http.StatusCreated, map[string]string{"status": "pending_activation"})
}

// HandleActivate confirms an email activation token.
func (h *Handlers) HandleActivate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		httpext.JsonError(w, "activation token is required", http.StatusBadRequest)
		return
	}

	if err := h.backend.Activate(r.Context(), req.Token); err != nil {
		writeAuthError(w, err)
		return
	}
	httpext.Json(w, http.StatusOK, map[string]string{"status": "activated"})
}

// HandleResendActivation requests a fresh activation email.
func (h *Handlers) HandleResendActivation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Email(req.Email); err != nil {
		writeAuthError(w, err)
		return
	}

	if err := h.backend.ResendActivation(r.Context(), req.Email); err != nil {
		writeAuthError(w, err)
		return
	}
	httpext.Json(w, http.StatusOK, map[string]string{"status": "sent"})
}

// HandlePasswordReset triggers the reset email.
func (h *Handlers) HandlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Email(req.Email); err != nil {
		writeAuthError(w, err)
		return
	}

	if err := h.backend.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeAuthError(w, err)
		return
	}
	httpext.Json(w, http.StatusOK, map[string]string{"status": "sent"})
}

// HandlePasswordResetConfirm completes a reset with the emailed token. The
// new password goes through the same shared validator as sign-up.
func (h *Handlers) HandlePasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		httpext.JsonError(w, "reset token is required", http.StatusBadRequest)
		return
	}
	if err := validate.Password(req.Password); err != nil {
		writeAuthError(w, err)
		return
	}

	if err := h.backend.ConfirmPasswordReset(r.Context(), req.Token, req.Password); err != nil {
		writeAuthError(w, err)
		return
	}
	httpext.Json(w, http.StatusOK, map[string]string{"status": "reset"})
}
