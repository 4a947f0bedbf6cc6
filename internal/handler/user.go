package handler

import (
	"net/http"

	"go.uber.org/zap"

	"depot-rest-api/internal/middleware"
	"depot-rest-api/internal/model"
	"depot-rest-api/internal/service"
	"depot-rest-api/internal/store"
	"depot-rest-api/pkg/apierror"
	"depot-rest-api/pkg/response"
)

// UserHandler handles staff-account requests.
type UserHandler struct {
	users  *store.Users
	tokens *service.TokenService
	log    *zap.Logger
}

// NewUserHandler creates the staff-account handler.
func NewUserHandler(users *store.Users, tokens *service.TokenService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, log: log}
}

// LoginResponse is the body returned by a successful staff login.
type LoginResponse struct {
	User  model.UserDTO `json:"user"`
	Token string        `json:"token"`
}

// Login handles POST /api/user/login. Unknown usernames and wrong passwords
// return the same message so usernames cannot be enumerated.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	user, err := h.users.GetByName(r.Context(), req.Name)
	if err != nil || !service.VerifyPassword(req.Password, user.Password) {
		response.Error(w, apierror.Unauthorized("invalid username or password"))
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Name, string(user.Flag))
	if err != nil {
		h.log.Warn("failed to issue token", zap.Error(err))
		response.Error(w, apierror.InternalError("failed to generate authentication token"))
		return
	}

	response.OK(w, LoginResponse{User: user.DTO(), Token: token})
}

// Get handles GET /api/user/get?id= (admin).
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, apiErr := queryID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		response.Error(w, storeError(h.log, err, "user does not exist"))
		return
	}
	response.OK(w, user.DTO())
}

// Insert handles POST /api/user/add (admin).
func (h *UserHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req model.InsertUser
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	digest, err := service.HashPassword(req.Password)
	if err != nil {
		h.log.Error("password hash failed", zap.Error(err))
		response.Error(w, apierror.InternalError("failed to create user"))
		return
	}
	req.Password = digest

	id, err := h.users.Insert(r.Context(), req)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to create user"))
		return
	}

	admin, _ := middleware.PrincipalFromContext(r.Context())
	h.log.Info("user created",
		zap.String("by", admin.Name),
		zap.String("name", req.Name),
		zap.String("flag", string(req.Flag)),
	)
	response.OK(w, id)
}

// Update handles POST /api/user/update (admin). A provided password is
// re-hashed before storage.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateUser
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if req.Password != nil {
		digest, err := service.HashPassword(*req.Password)
		if err != nil {
			h.log.Error("password hash failed", zap.Error(err))
			response.Error(w, apierror.InternalError("failed to update user"))
			return
		}
		req.Password = &digest
	}

	rows, err := h.users.Update(r.Context(), req)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to update user"))
		return
	}

	admin, _ := middleware.PrincipalFromContext(r.Context())
	h.log.Info("user updated", zap.String("by", admin.Name), zap.Uint64("id", req.ID))
	response.OK(w, rows)
}

// Delete handles DELETE /api/user/delete?id= (admin).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, apiErr := queryID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	rows, err := h.users.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to delete user"))
		return
	}

	admin, _ := middleware.PrincipalFromContext(r.Context())
	h.log.Info("user deleted", zap.String("by", admin.Name), zap.Uint64("id", id))
	response.OK(w, rows)
}

// Page handles GET /api/user/get_all (admin), paginated.
func (h *UserHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.users.Page(r.Context(), model.ParsePageQuery(r))
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to list users"))
		return
	}
	response.OK(w, page)
}
