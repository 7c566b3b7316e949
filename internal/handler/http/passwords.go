// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/go-chi/chi/v5"
)

// entryIDFromRequest parses the {id} path parameter.
func entryIDFromRequest(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEntryID, raw)
	}
	return id, nil
}

// upsertCredential creates an entry or, when an entry with the same logical
// identity exists, versions it.
func (h *Handler) upsertCredential(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input models.CredentialInput
	if err = utils.DecodeJSON(r, &input); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	entry, err := h.services.CredentialService.Upsert(r.Context(), identity, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) listCredentials(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.services.CredentialService.List(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) updateCredential(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entryID, err := entryIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.CredentialPatch
	if err = utils.DecodeJSON(r, &patch); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	entry, err := h.services.CredentialService.Update(r.Context(), identity, entryID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) credentialHistory(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entryID, err := entryIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	history, err := h.services.CredentialService.History(r.Context(), identity, entryID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, history, http.StatusOK)
}

func (h *Handler) verifyCredential(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entryID, err := entryIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.PasswordRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.CredentialService.Verify(r.Context(), identity, entryID, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) deleteCredential(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entryID, err := entryIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.CredentialService.Delete(r.Context(), identity, entryID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
