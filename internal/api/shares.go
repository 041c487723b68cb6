package api

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/secondbrain-dev/secondbrain/internal/auth"
	"github.com/secondbrain-dev/secondbrain/internal/logger"
	"github.com/secondbrain-dev/secondbrain/internal/store"
)

const (
	shareHashLen     = 10
	shareHashCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// sharesHandler provides share enable/disable and public resolution.
type sharesHandler struct {
	shares   *store.ShareLinkStore
	contents *store.ContentStore
	users    *store.UserStore
}

// registerShareRoutes registers the share toggle on the authenticated router
// and the public resolver on the open router.
func registerShareRoutes(r, authed chi.Router, shares *store.ShareLinkStore, contents *store.ContentStore, users *store.UserStore) {
	h := &sharesHandler{shares: shares, contents: contents, users: users}
	authed.Post("/brain/share", h.Toggle)
	r.Get("/brain/{shareLink}", h.Resolve)
}

// Toggle enables or disables the caller's public share link.
// POST /api/v1/brain/share
//
// Enable is idempotent: an existing hash is returned unchanged, never
// rotated. Disable deletes the link and is a no-op when none exists.
func (h *sharesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.Share {
		if err := h.shares.DeleteByOwner(r.Context(), userID); err != nil {
			logger.Log.Errorw("delete share link", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		writeMessage(w, http.StatusOK, "Removed link")
		return
	}

	existing, err := h.shares.GetByOwner(r.Context(), userID)
	if err == nil {
		writeJSON(w, http.StatusOK, ShareHashResponse{Hash: existing.Hash})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		logger.Log.Errorw("get share link", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	hash, err := randomHash(shareHashLen)
	if err != nil {
		logger.Log.Errorw("generate share hash", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	link, err := h.shares.Create(r.Context(), userID, hash)
	if err != nil {
		logger.Log.Errorw("create share link", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, ShareHashResponse{Hash: link.Hash})
}

// Resolve returns the public snapshot behind a share hash: the owner's
// username and full content list. No authentication.
// GET /api/v1/brain/{shareLink}
//
// Unknown hashes answer 411 with a generic message; the status is historical
// and preserved for client compatibility.
func (h *sharesHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "shareLink")

	link, err := h.shares.GetByHash(r.Context(), hash)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, statusLengthRequired, "Sorry incorrect input")
		return
	}
	if err != nil {
		logger.Log.Errorw("resolve share hash", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	items, err := h.contents.ListByOwner(r.Context(), link.OwnerID)
	if err != nil {
		logger.Log.Errorw("list shared content", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	owner, err := h.users.GetByID(r.Context(), link.OwnerID)
	if errors.Is(err, store.ErrNotFound) {
		// A share link always references a live user; seeing this means the
		// invariant broke somewhere else.
		writeMessage(w, statusLengthRequired, "User not found, this should not happen")
		return
	}
	if err != nil {
		logger.Log.Errorw("load share owner", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, SharedBrainResponse{
		Username: owner.Username.String,
		Content:  contentResponses(items),
	})
}

// randomHash returns n random characters from the share-hash charset.
func randomHash(n int) (string, error) {
	max := big.NewInt(int64(len(shareHashCharset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = shareHashCharset[idx.Int64()]
	}
	return string(b), nil
}
