package handlers

import (
	"net/http"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/job"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Location        string  `json:"location"`
	JobType         string  `json:"job_type"`
	ExperienceLevel string  `json:"experience_level"`
	CategoryID      string  `json:"category_id"`
	SalaryMin       *int64  `json:"salary_min"`
	SalaryMax       *int64  `json:"salary_max"`
	Remote          bool    `json:"remote"`
	Featured        bool    `json:"featured"`
	Deadline        *string `json:"deadline"`
}

func (req jobRequest) toJob() (job.Job, error) {
	j := job.Job{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Remote:          req.Remote,
		Featured:        req.Featured,
	}
	if req.CategoryID != "" {
		parsed, err := common.ParseUUID(req.CategoryID)
		if err != nil {
			return j, common.NewValidationError("invalid job", map[string]string{"category_id": "invalid uuid"})
		}
		j.CategoryID = &parsed
	}
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			return j, common.NewValidationError("invalid job", map[string]string{"deadline": "must be RFC 3339"})
		}
		j.Deadline = &parsed
	}
	return j, nil
}

func jobQueryFromRequest(r *http.Request) discovery.JobQuery {
	values := r.URL.Query()
	return discovery.JobQuery{
		Search:     values.Get("search"),
		Status:     job.Status(values.Get("status")),
		JobType:    values.Get("job_type"),
		City:       values.Get("city"),
		Experience: values.Get("experience_level"),
		CategoryID: uuidFromQuery(r, "category_id"),
		Remote:     boolFromQuery(r, "remote"),
		Featured:   boolFromQuery(r, "featured"),
		Verified:   boolFromQuery(r, "verified"),
		SalaryMin:  int64FromQuery(r, "salary_min"),
		SalaryMax:  int64FromQuery(r, "salary_max"),
		Sort:       discovery.SortKey(values.Get("sort")),
		Page:       pageFromQuery(r),
	}
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobs.ListPublic(r.Context(), jobQueryFromRequest(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	view, err := h.jobs.Get(r.Context(), middleware.ActorFromContext(r.Context()), jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	j, err := req.toJob()
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), *actor, j)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	j, err := req.toJob()
	if err != nil {
		response.Error(w, err)
		return
	}
	j.ID = jobID
	updated, err := h.jobs.Update(r.Context(), *actor, j)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type jobStatusRequest struct {
	Status string `json:"status"`
}

func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
	var req jobStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.jobs.SetStatus(r.Context(), *actor, jobID, job.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	result, err := h.jobs.ListMine(r.Context(), *actor, jobQueryFromRequest(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *JobHandler) ListRecommended(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	result, err := h.jobs.ListRecommended(r.Context(), *actor, pageFromQuery(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}
