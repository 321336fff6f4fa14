// internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"redline/internal/change"
	apierrors "redline/internal/errors"
	"redline/internal/reconcile"
	"redline/internal/review"
	"redline/internal/validation"
)

// ReviewHandler exposes review sessions over HTTP.
type ReviewHandler struct {
	manager          *review.Manager
	maxDocumentBytes int
}

func NewReviewHandler(manager *review.Manager, maxDocumentBytes int) *ReviewHandler {
	return &ReviewHandler{manager: manager, maxDocumentBytes: maxDocumentBytes}
}

// Register mounts the review routes on a mux.
func (h *ReviewHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/reviews", h.Create)
	mux.HandleFunc("GET /api/reviews/{id}", h.Get)
	mux.HandleFunc("GET /api/reviews/{id}/diff", h.Diff)
	mux.HandleFunc("POST /api/reviews/{id}/decisions", h.Decide)
	mux.HandleFunc("GET /api/reviews/{id}/result", h.Result)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := validation.ValidateReviewRequest(r, h.maxDocumentBytes)
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := h.manager.Create(req.Original, req.Revised)
	if err != nil {
		writeError(w, apierrors.Internal(err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, apierrors.NotFound("session not found"))
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *ReviewHandler) Diff(w http.ResponseWriter, r *http.Request) {
	result, err := h.manager.Diff(r.PathValue("id"))
	if err != nil {
		writeError(w, apierrors.NotFound("session not found"))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ReviewHandler) Decide(w http.ResponseWriter, r *http.Request) {
	req, err := validation.ValidateDecisionRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := h.manager.Decide(r.PathValue("id"), req.ChangeID, change.State(req.State))
	if err != nil {
		if errors.Is(err, review.ErrChangeNotFound) {
			// The decision references a change from a stale diff.
			writeError(w, apierrors.Conflict("stale change id", req.ChangeID))
			return
		}
		writeError(w, apierrors.NotFound("session not found"))
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *ReviewHandler) Result(w http.ResponseWriter, r *http.Request) {
	out, err := h.manager.Result(r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, reconcile.ErrAmbiguous):
			writeError(w, apierrors.Conflict("ambiguous change selection", err.Error()))
		case errors.Is(err, reconcile.ErrStaleChange):
			writeError(w, apierrors.Conflict("stale change id", err.Error()))
		default:
			writeError(w, apierrors.NotFound("session not found"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"document": out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierrors.Error
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.Internal(err.Error())
	}
	writeJSON(w, apiErr.Code, apiErr)
}
