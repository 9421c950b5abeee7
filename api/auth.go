/*
auth.go - API-key authentication and admin key management

Calculate and rates endpoints require an X-Org-ID / X-API-Key header pair
matching an active key; every successful validation bumps the key's usage
counter. When no active keys exist at all the API runs open, so a fresh
database doesn't lock out local development.

Admin endpoints manage keys and are guarded by a static bearer token from
configuration instead; with no token configured they are disabled.
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/award-engine/store/sqlite"
)

// RequireAPIKey validates the X-Org-ID / X-API-Key header pair.
func (h *Handler) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Store == nil {
			next.ServeHTTP(w, r)
			return
		}
		hasKeys, err := h.Store.HasAPIKeys(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to check api keys", err)
			return
		}
		if !hasKeys {
			// Open mode: nothing to validate against yet.
			next.ServeHTTP(w, r)
			return
		}

		orgID := r.Header.Get("X-Org-ID")
		rawKey := r.Header.Get("X-API-Key")
		if _, err := h.Store.ValidateAPIKey(r.Context(), orgID, rawKey); err != nil {
			authFailures.Inc()
			writeError(w, http.StatusUnauthorized, "Invalid or missing API key", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin guards admin routes with a static bearer token.
func RequireAdmin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				writeError(w, http.StatusForbidden, "Admin endpoints disabled", nil)
				return
			}
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if got != token {
				authFailures.Inc()
				writeError(w, http.StatusUnauthorized, "Invalid admin token", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CreateAPIKey creates a key for an org. The raw key is returned once.
// POST /api/v1/admin/keys
func (h *Handler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req CreateAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.OrgID) == "" || strings.TrimSpace(req.OrgName) == "" {
		writeError(w, http.StatusBadRequest, "org_id and org_name are required", nil)
		return
	}

	key, raw, err := h.Store.CreateAPIKey(r.Context(), req.OrgID, req.OrgName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create api key", err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateAPIKeyResponse{
		APIKeyDTO: toAPIKeyDTO(*key),
		Key:       raw,
		Message:   "Store this key securely - it will not be shown again.",
	})
}

// ListAPIKeys returns all keys, newest first.
// GET /api/v1/admin/keys
func (h *Handler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.Store.ListAPIKeys(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list api keys", err)
		return
	}
	dtos := make([]APIKeyDTO, len(keys))
	for i, k := range keys {
		dtos[i] = toAPIKeyDTO(k)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RevokeAPIKey deactivates a key.
// DELETE /api/v1/admin/keys/{id}
func (h *Handler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid key id", err)
		return
	}
	if err := h.Store.RevokeAPIKey(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "Key not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"revoked": true})
}

func toAPIKeyDTO(k sqlite.APIKey) APIKeyDTO {
	dto := APIKeyDTO{
		ID:         k.ID,
		OrgID:      k.OrgID,
		OrgName:    k.OrgName,
		KeyPrefix:  k.KeyPrefix,
		IsActive:   k.IsActive,
		CreatedAt:  k.CreatedAt.Format(time.RFC3339),
		TotalCalls: k.TotalCalls,
	}
	if k.LastUsedAt != nil {
		s := k.LastUsedAt.Format(time.RFC3339)
		dto.LastUsedAt = &s
	}
	return dto
}
