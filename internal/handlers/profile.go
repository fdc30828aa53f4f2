package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/readbacklabs/readback-web/internal/infrastructure/backend"
	"github.com/readbacklabs/readback-web/internal/services/resolver"
	"github.com/readbacklabs/readback-web/pkg/httpext"
)

const maxBodyBytes = 8 << 20

// HandleGetProfile fetches the authenticated user's profile through the
// resolver, so an expired bearer credential is renewed or the third-party
// session is used without the caller noticing.
func (h *Handlers) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	var profile *backend.Profile

	_, err := h.resolver.Do(r.Context(), w, r, func(ctx context.Context, identity *resolver.Identity) error {
		p, err := h.backend.FetchProfile(ctx, identity.Bearer)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpext.Json(w, http.StatusOK, profile)
}

// HandleUpdateProfile relays a partial profile update.
func (h *Handlers) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	patch, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || !json.Valid(patch) {
		httpext.JsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var profile *backend.Profile
	_, err = h.resolver.Do(r.Context(), w, r, func(ctx context.Context, identity *resolver.Identity) error {
		p, err := h.backend.UpdateProfile(ctx, identity.Bearer, patch)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpext.Json(w, http.StatusOK, profile)
}

// HandleUploadAvatar streams the avatar payload to the backend unchanged.
// The body is buffered so a mid-flight credential fallback can replay it.
func (h *Handlers) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(body) == 0 {
		httpext.JsonError(w, "avatar payload is required", http.StatusBadRequest)
		return
	}
	contentType := r.Header.Get("Content-Type")

	var profile *backend.Profile
	_, err = h.resolver.Do(r.Context(), w, r, func(ctx context.Context, identity *resolver.Identity) error {
		p, err := h.backend.UploadAvatar(ctx, identity.Bearer, contentType, body)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpext.Json(w, http.StatusOK, profile)
}
