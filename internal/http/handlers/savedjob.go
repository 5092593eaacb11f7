package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type SavedJobHandler struct {
	saved *app.SavedJobService
}

func NewSavedJobHandler(saved *app.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{saved: saved}
}

type saveJobRequest struct {
	JobID string `json:"job_id"`
}

func (h *SavedJobHandler) Save(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	var req saveJobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "invalid uuid"}))
		return
	}
	if err := h.saved.Save(r.Context(), *actor, jobID); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

func (h *SavedJobHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.saved.Unsave(r.Context(), *actor, jobID); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

func (h *SavedJobHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.saved.List(r.Context(), *actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
