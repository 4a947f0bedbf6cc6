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

// ClientHandler handles client-account requests, both the client-facing
// endpoints and the staff-side views under /user/cop.
type ClientHandler struct {
	clients *store.Clients
	tokens  *service.TokenService
	log     *zap.Logger
}

// NewClientHandler creates the client handler.
func NewClientHandler(clients *store.Clients, tokens *service.TokenService, log *zap.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, tokens: tokens, log: log}
}

// ClientLoginResponse is the body returned by a successful client login.
type ClientLoginResponse struct {
	Client model.Client `json:"client"`
	Token  string       `json:"token"`
}

// Login handles POST /api/client/login. The issued token carries the client
// type in the flag claim. Failure messages match the staff login policy.
func (h *ClientHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	client, err := h.clients.GetByName(r.Context(), req.Name)
	if err != nil || !service.VerifyPassword(req.Password, client.Password) {
		response.Error(w, apierror.Unauthorized("invalid username or password"))
		return
	}

	token, err := h.tokens.Issue(client.ID, client.Name, string(client.Ctype))
	if err != nil {
		h.log.Warn("failed to issue token", zap.Error(err))
		response.Error(w, apierror.InternalError("failed to generate authentication token"))
		return
	}

	response.OK(w, ClientLoginResponse{Client: client, Token: token})
}

// GetSelf handles GET /api/client/get (client token). The record returned is
// always the caller's own; the id comes from the token, never the query.
func (h *ClientHandler) GetSelf(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	client, err := h.clients.Get(r.Context(), principal.ID)
	if err != nil {
		response.Error(w, storeError(h.log, err, "client not found"))
		return
	}
	response.OK(w, client)
}

// Insert handles POST /api/client/add (admin).
func (h *ClientHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req model.InsertClient
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	digest, err := service.HashPassword(req.Password)
	if err != nil {
		h.log.Error("password hash failed", zap.Error(err))
		response.Error(w, apierror.InternalError("failed to create client"))
		return
	}
	req.Password = digest

	id, err := h.clients.Insert(r.Context(), req)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to create client"))
		return
	}

	h.log.Info("client created", zap.String("name", req.Name))
	response.OK(w, id)
}

// Update handles POST /api/client/update (admin).
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateClient
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	rows, err := h.clients.Update(r.Context(), req)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to update client"))
		return
	}
	response.OK(w, rows)
}

// Staff-side client operations, mounted under /api/user/cop.

// GetForStaff handles GET /api/user/cop?id= (user token).
func (h *ClientHandler) GetForStaff(w http.ResponseWriter, r *http.Request) {
	id, apiErr := queryID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	client, err := h.clients.Get(r.Context(), id)
	if err != nil {
		response.Error(w, storeError(h.log, err, "client not found"))
		return
	}

	user, _ := middleware.PrincipalFromContext(r.Context())
	h.log.Info("client viewed", zap.String("by", user.Name), zap.Uint64("id", id))
	response.OK(w, client)
}

// ModifyType handles POST /api/user/cop?id=&ctype= (user token).
func (h *ClientHandler) ModifyType(w http.ResponseWriter, r *http.Request) {
	id, apiErr := queryID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}
	ctype := model.ParseClientType(r.URL.Query().Get("ctype"))

	rows, err := h.clients.UpdateType(r.Context(), id, ctype)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to update client type"))
		return
	}

	user, _ := middleware.PrincipalFromContext(r.Context())
	h.log.Info("client type modified", zap.String("by", user.Name), zap.Uint64("id", id))
	response.OK(w, rows)
}

// All handles GET /api/user/cop/all (user token).
func (h *ClientHandler) All(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.All(r.Context())
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to list clients"))
		return
	}
	response.OK(w, clients)
}

// ByNameLike handles GET /api/user/cop/likes?name= (user token).
func (h *ClientHandler) ByNameLike(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.ByNameLike(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to list clients"))
		return
	}
	response.OK(w, clients)
}

// ByType handles GET /api/user/cop/specified?ctype= (user token).
func (h *ClientHandler) ByType(w http.ResponseWriter, r *http.Request) {
	ctype := model.ParseClientType(r.URL.Query().Get("ctype"))

	clients, err := h.clients.ByType(r.Context(), ctype)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to list clients"))
		return
	}
	response.OK(w, clients)
}
