package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

// AdminHandler groups the moderation surface. Role enforcement happens twice:
// the router requires the admin role, and each service re-checks the actor.
type AdminHandler struct {
	admin     *app.AdminService
	users     *app.UserService
	companies *app.CompanyService
	jobs      *app.JobService
}

func NewAdminHandler(admin *app.AdminService, users *app.UserService, companies *app.CompanyService, jobs *app.JobService) *AdminHandler {
	return &AdminHandler{admin: admin, users: users, companies: companies, jobs: jobs}
}

func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	snapshot, err := h.admin.Statistics(r.Context(), *actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snapshot)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	values := r.URL.Query()
	result, err := h.users.List(r.Context(), *actor, discovery.UserQuery{
		Search: values.Get("search"),
		Role:   user.Role(values.Get("role")),
		Status: user.AccountStatus(values.Get("status")),
		Page:   pageFromQuery(r),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	userID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	account, err := h.users.Get(r.Context(), *actor, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

type accountStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	userID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req accountStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.users.SetAccountStatus(r.Context(), *actor, userID, user.AccountStatus(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	userID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.users.Delete(r.Context(), *actor, userID); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

type companyStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) SetCompanyStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	companyID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req companyStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.companies.SetStatus(r.Context(), *actor, companyID, company.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type verifyRequest struct {
	Verified bool `json:"verified"`
}

func (h *AdminHandler) SetCompanyVerified(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	companyID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.companies.SetVerified(r.Context(), *actor, companyID, req.Verified)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	companyID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.companies.Delete(r.Context(), *actor, companyID); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

func (h *AdminHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	result, err := h.jobs.ListAll(r.Context(), *actor, jobQueryFromRequest(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *AdminHandler) ApproveJob(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Approve(r.Context(), *actor, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type rejectJobRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) RejectJob(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req rejectJobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Reason == "" {
		response.Error(w, common.NewError(common.CodeValidation, "reason is required", nil))
		return
	}
	updated, err := h.jobs.Reject(r.Context(), *actor, jobID, req.Reason)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type jobStatusChangeRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) SetJobStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobStatusChangeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.SetStatus(r.Context(), *actor, jobID, job.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), *actor, jobID); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
