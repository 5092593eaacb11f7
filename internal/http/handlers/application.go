package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/application"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
}

func NewApplicationHandler(applications *app.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

type applyRequest struct {
	JobID          string `json:"job_id"`
	CVURL          string `json:"cv_url"`
	CoverLetter    string `json:"cover_letter"`
	ExpectedSalary *int64 `json:"expected_salary"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid application", map[string]string{"job_id": "invalid uuid"}))
		return
	}
	created, err := h.applications.Apply(r.Context(), *actor, app.ApplyInput{
		JobID:          jobID,
		CVURL:          req.CVURL,
		CoverLetter:    req.CoverLetter,
		ExpectedSalary: req.ExpectedSalary,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func applicationQueryFromRequest(r *http.Request) discovery.ApplicationQuery {
	values := r.URL.Query()
	return discovery.ApplicationQuery{
		Search:      values.Get("search"),
		Status:      application.Status(values.Get("status")),
		JobID:       uuidFromQuery(r, "job_id"),
		CandidateID: uuidFromQuery(r, "candidate_id"),
		Sort:        discovery.SortKey(values.Get("sort")),
		Page:        pageFromQuery(r),
	}
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	result, err := h.applications.ListMine(r.Context(), *actor, applicationQueryFromRequest(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *ApplicationHandler) ListForCompany(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	result, err := h.applications.ListForCompany(r.Context(), *actor, applicationQueryFromRequest(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *ApplicationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	query := applicationQueryFromRequest(r)
	query.CompanyID = uuidFromQuery(r, "company_id")
	result, err := h.applications.ListAll(r.Context(), *actor, query)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

type applicationStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), *actor, applicationID, application.Status(req.Status), req.Notes)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

// Withdraw is the candidate-facing DELETE. The row is kept with status
// withdrawn, it is not removed.
func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.Withdraw(r.Context(), *actor, applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.Delete(r.Context(), *actor, applicationID); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
