package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/secondbrain-dev/secondbrain/internal/auth"
	"github.com/secondbrain-dev/secondbrain/internal/logger"
	"github.com/secondbrain-dev/secondbrain/internal/store"
)

// contentsHandler provides create, list, and delete for content items.
type contentsHandler struct {
	contents *store.ContentStore
}

// registerContentRoutes registers content routes on the authenticated router.
func registerContentRoutes(authed chi.Router, contents *store.ContentStore) {
	h := &contentsHandler{contents: contents}
	authed.Post("/content", h.Create)
	authed.Get("/content", h.List)
	authed.Delete("/content", h.Delete)
}

// Create stores a content item for the caller.
// POST /api/v1/content
//
// Fields are stored as-is with no format checks, and the tag set is
// always empty.
func (h *contentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.contents.Create(r.Context(), userID, req.Title, req.Link, req.Type); err != nil {
		logger.Log.Errorw("create content", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeMessage(w, http.StatusOK, "Content added")
}

// List returns all content owned by the caller with the owner expanded.
// GET /api/v1/content
func (h *contentsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	items, err := h.contents.ListByOwner(r.Context(), userID)
	if err != nil {
		logger.Log.Errorw("list content", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, ContentListResponse{Content: contentResponses(items)})
}

// Delete removes a content item the caller owns.
// DELETE /api/v1/content?contentId=
//
// The delete matches both id and owner, so a guessed id belonging to another
// user answers 404 exactly like a missing one — existence is not leaked.
func (h *contentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	contentID := r.URL.Query().Get("contentId")
	if contentID == "" {
		writeMessage(w, http.StatusBadRequest, "contentId is required")
		return
	}
	if _, err := uuid.Parse(contentID); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid contentId")
		return
	}

	err := h.contents.Delete(r.Context(), contentID, userID)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "No content found or not authorized")
		return
	}
	if err != nil {
		logger.Log.Errorw("delete content", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeMessage(w, http.StatusOK, "Deleted content")
}

// contentResponses converts joined store rows to API shapes. Tags are always
// an empty list, never null.
func contentResponses(items []*store.ContentWithOwner) []ContentResponse {
	out := make([]ContentResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ContentResponse{
			ID:    it.ID,
			Title: it.Title,
			Link:  it.Link,
			Type:  it.Type,
			Tags:  []string{},
			Owner: OwnerResponse{ID: it.OwnerID, Username: it.OwnerUsername},
		})
	}
	return out
}
