package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/readbacklabs/readback-web/internal/autherr"
	"github.com/readbacklabs/readback-web/internal/services/resolver"
	"github.com/readbacklabs/readback-web/pkg/httpext"
)

// HandleListUsers relays the admin user listing. The elevation check here
// is a UX optimisation; the backend enforces it independently. A
// PermissionDenied from the gate passes through the resolver untouched and
// never triggers credential re-resolution.
func (h *Handlers) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	var users json.RawMessage

	_, err := h.resolver.Do(r.Context(), w, r, func(ctx context.Context, identity *resolver.Identity) error {
		if !h.authz.IsElevated(identity) {
			return autherr.PermissionDenied("administrator access required")
		}
		raw, err := h.backend.ListUsers(ctx, identity.Bearer, r.URL.RawQuery)
		if err != nil {
			return err
		}
		users = raw
		return nil
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeRaw(w, users)
}

// HandleUpdateUser relays an admin update for one user.
func (h *Handlers) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		httpext.JsonError(w, "user id is required", http.StatusBadRequest)
		return
	}

	patch, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || !json.Valid(patch) {
		httpext.JsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var updated json.RawMessage
	_, err = h.resolver.Do(r.Context(), w, r, func(ctx context.Context, identity *resolver.Identity) error {
		if !h.authz.IsElevated(identity) {
			return autherr.PermissionDenied("administrator access required")
		}
		raw, err := h.backend.UpdateUser(ctx, identity.Bearer, id, patch)
		if err != nil {
			return err
		}
		updated = raw
		return nil
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeRaw(w, updated)
}

func writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
