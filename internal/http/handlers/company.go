package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/company"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type CompanyHandler struct {
	companies *app.CompanyService
}

func NewCompanyHandler(companies *app.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type companyRequest struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	City        string `json:"city"`
	Website     string `json:"website"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

func (req companyRequest) toCompany() company.Company {
	return company.Company{
		Name:        req.Name,
		Industry:    req.Industry,
		City:        req.City,
		Website:     req.Website,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.companies.Create(r.Context(), *actor, req.toCompany())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.companies.Update(r.Context(), *actor, req.toCompany())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *CompanyHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		response.Error(w, errUnauthorized())
		return
	}
	item, err := h.companies.GetMine(r.Context(), *actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.companies.Get(r.Context(), companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	result, err := h.companies.List(r.Context(), discovery.CompanyQuery{
		Search:   values.Get("search"),
		Status:   company.Status(values.Get("status")),
		City:     values.Get("city"),
		Industry: values.Get("industry"),
		Verified: boolFromQuery(r, "verified"),
		Sort:     discovery.SortKey(values.Get("sort")),
		Page:     pageFromQuery(r),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}
