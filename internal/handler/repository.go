package handler

import (
	"net/http"

	"go.uber.org/zap"

	"depot-rest-api/internal/model"
	"depot-rest-api/internal/store"
	"depot-rest-api/pkg/response"
)

// RepositoryHandler handles warehouse requests.
type RepositoryHandler struct {
	repos *store.Repositories
	log   *zap.Logger
}

// NewRepositoryHandler creates the warehouse handler.
func NewRepositoryHandler(repos *store.Repositories, log *zap.Logger) *RepositoryHandler {
	return &RepositoryHandler{repos: repos, log: log}
}

// Get handles GET /api/repository/get?id= (user token).
func (h *RepositoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, apiErr := queryID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	repo, err := h.repos.Get(r.Context(), id)
	if err != nil {
		response.Error(w, storeError(h.log, err, "repository not found"))
		return
	}
	response.OK(w, repo)
}

// Insert handles POST /api/repository/add (user token).
func (h *RepositoryHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req model.InsertRepository
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	id, err := h.repos.Insert(r.Context(), req)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to create repository"))
		return
	}

	h.log.Info("repository created", zap.String("name", req.Name))
	response.OK(w, id)
}

// Update handles POST /api/repository/update (user token).
func (h *RepositoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateRepository
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	rows, err := h.repos.Update(r.Context(), req)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to update repository"))
		return
	}
	response.OK(w, rows)
}

// Delete handles DELETE /api/repository/delete?id= (admin).
func (h *RepositoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, apiErr := queryID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	rows, err := h.repos.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to delete repository"))
		return
	}
	response.OK(w, rows)
}

// All handles GET /api/repository/get_all (user token).
func (h *RepositoryHandler) All(w http.ResponseWriter, r *http.Request) {
	repos, err := h.repos.All(r.Context())
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to list repositories"))
		return
	}
	response.OK(w, repos)
}

// ByNameLike handles GET /api/repository/get_by_name_likes?name= (user token).
func (h *RepositoryHandler) ByNameLike(w http.ResponseWriter, r *http.Request) {
	repos, err := h.repos.ByNameLike(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to list repositories"))
		return
	}
	response.OK(w, repos)
}
