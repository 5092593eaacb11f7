package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/http/response"
)

type CategoryHandler struct {
	categories *app.CategoryService
}

func NewCategoryHandler(categories *app.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
