package handler

import (
	"net/http"

	"go.uber.org/zap"

	"depot-rest-api/internal/middleware"
	"depot-rest-api/internal/model"
	"depot-rest-api/internal/store"
	"depot-rest-api/pkg/apierror"
	"depot-rest-api/pkg/response"
)

// OrderHandler handles order requests, including transactional creation.
type OrderHandler struct {
	orders  *store.Orders
	clients *store.Clients
	log     *zap.Logger
}

// NewOrderHandler creates the order handler.
func NewOrderHandler(orders *store.Orders, clients *store.Clients, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, clients: clients, log: log}
}

// Get handles GET /api/order?id= (user token).
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, apiErr := queryID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		response.Error(w, storeError(h.log, err, "order does not exist"))
		return
	}
	response.OK(w, order)
}

// PageOfClient handles GET /api/order/page?id=&page=&page_size= (user token).
// The client is looked up first so a missing client reads as its own error
// rather than an empty page.
func (h *OrderHandler) PageOfClient(w http.ResponseWriter, r *http.Request) {
	cid, apiErr := queryID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	client, err := h.clients.Get(r.Context(), cid)
	if err != nil {
		response.Error(w, storeError(h.log, err, "client does not exist"))
		return
	}

	page, err := h.orders.PageOfClient(r.Context(), client.ID, model.ParsePageQuery(r))
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to list orders"))
		return
	}
	response.OK(w, page)
}

// Insert handles POST /api/order/add (user token, transactional). The order
// header and every line item commit together or not at all.
func (h *OrderHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req model.InsertOrder
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}
	if len(req.OrderItems) == 0 {
		response.Error(w, apierror.BadRequest("an order requires at least one line item"))
		return
	}

	id, err := h.orders.Create(r.Context(), req.Cid, req.OrderItems)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to create order"))
		return
	}

	user, _ := middleware.PrincipalFromContext(r.Context())
	h.log.Info("order created",
		zap.String("by", user.Name),
		zap.Uint64("id", id),
		zap.Uint64("cid", req.Cid),
		zap.Int("items", len(req.OrderItems)),
	)
	response.OK(w, id)
}

// Update handles POST /api/order/update (user token). Status writes are
// permissive; any status may replace any other.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateOrder
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	rows, err := h.orders.UpdateStatus(r.Context(), req.ID, req.Status)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to update order"))
		return
	}
	response.OK(w, rows)
}
