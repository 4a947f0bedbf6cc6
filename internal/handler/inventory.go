package handler

import (
	"net/http"

	"go.uber.org/zap"

	"depot-rest-api/internal/middleware"
	"depot-rest-api/internal/model"
	"depot-rest-api/internal/store"
	"depot-rest-api/pkg/response"
)

// InventoryHandler handles stock queries and the two transactional
// adjustment operations.
type InventoryHandler struct {
	inventory *store.Inventory
	log       *zap.Logger
}

// NewInventoryHandler creates the inventory handler.
func NewInventoryHandler(inventory *store.Inventory, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, log: log}
}

// OfRepository handles GET /api/inventory/of_repo?rid= (user token).
func (h *InventoryHandler) OfRepository(w http.ResponseWriter, r *http.Request) {
	rid, apiErr := queryID(r, "rid")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	details, err := h.inventory.OfRepository(r.Context(), rid)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to fetch inventory"))
		return
	}
	if details == nil {
		details = []model.InventoryDetail{}
	}
	response.OK(w, details)
}

// OfProduct handles GET /api/inventory/of_product?pid= (user token).
func (h *InventoryHandler) OfProduct(w http.ResponseWriter, r *http.Request) {
	pid, apiErr := queryID(r, "pid")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	details, err := h.inventory.OfProduct(r.Context(), pid)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to fetch inventory"))
		return
	}
	if details == nil {
		details = []model.InventoryDetail{}
	}
	response.OK(w, details)
}

// Add handles POST /api/inventory/add (user token, transactional).
func (h *InventoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.AdjustInventory
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if err := h.inventory.Add(r.Context(), req.Rid, req.Pid, req.Amount); err != nil {
		response.Error(w, storeError(h.log, err, "failed to update inventory"))
		return
	}

	user, _ := middleware.PrincipalFromContext(r.Context())
	h.log.Info("inventory added",
		zap.String("by", user.Name),
		zap.Uint64("rid", req.Rid),
		zap.Uint64("pid", req.Pid),
		zap.Uint64("amount", req.Amount),
	)
	response.OK(w, uint64(1))
}

// Reduce handles POST /api/inventory/reduce (user token, transactional with
// a stock check).
func (h *InventoryHandler) Reduce(w http.ResponseWriter, r *http.Request) {
	var req model.AdjustInventory
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if err := h.inventory.Reduce(r.Context(), req.Rid, req.Pid, req.Amount); err != nil {
		response.Error(w, storeError(h.log, err, "product not stocked in this repository"))
		return
	}

	user, _ := middleware.PrincipalFromContext(r.Context())
	h.log.Info("inventory reduced",
		zap.String("by", user.Name),
		zap.Uint64("rid", req.Rid),
		zap.Uint64("pid", req.Pid),
		zap.Uint64("amount", req.Amount),
	)
	response.OK(w, uint64(1))
}
