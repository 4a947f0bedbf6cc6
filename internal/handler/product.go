package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"depot-rest-api/internal/cache"
	"depot-rest-api/internal/model"
	"depot-rest-api/internal/store"
	"depot-rest-api/pkg/response"
)

const productAllKey = "product:all"

// ProductHandler handles catalog requests. Single-product and full-catalog
// reads go through the cache when one is configured; writes invalidate.
type ProductHandler struct {
	products *store.Products
	cache    cache.Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

// NewProductHandler creates the product handler. cache may be nil to disable
// caching entirely.
func NewProductHandler(products *store.Products, c cache.Cache, ttl time.Duration, log *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, cache: c, cacheTTL: ttl, log: log}
}

// Get handles GET /api/product/get?id= (user token).
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, apiErr := queryID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if h.cache != nil {
		data, err := h.cache.GetOrSet(r.Context(), productKey(id), h.cacheTTL, func() ([]byte, error) {
			product, err := h.products.Get(r.Context(), id)
			if err != nil {
				return nil, err
			}
			return json.Marshal(product)
		})
		if err != nil {
			response.Error(w, storeError(h.log, err, "product not found"))
			return
		}
		writeCachedJSON(w, data)
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		response.Error(w, storeError(h.log, err, "product not found"))
		return
	}
	response.OK(w, product)
}

// All handles GET /api/product/get_all (user token).
func (h *ProductHandler) All(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		data, err := h.cache.GetOrSet(r.Context(), productAllKey, h.cacheTTL, func() ([]byte, error) {
			products, err := h.products.All(r.Context())
			if err != nil {
				return nil, err
			}
			if products == nil {
				products = []model.Product{}
			}
			return json.Marshal(products)
		})
		if err != nil {
			response.Error(w, storeError(h.log, err, "failed to list products"))
			return
		}
		writeCachedJSON(w, data)
		return
	}

	products, err := h.products.All(r.Context())
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to list products"))
		return
	}
	response.OK(w, products)
}

// Page handles GET /api/product/get_page (user token). Pages are not cached;
// the paged listing is already bounded.
func (h *ProductHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.products.Page(r.Context(), model.ParsePageQuery(r))
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to list products"))
		return
	}
	response.OK(w, page)
}

// Insert handles POST /api/product/add (user token).
func (h *ProductHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req model.InsertProduct
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	id, err := h.products.Insert(r.Context(), req)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to create product"))
		return
	}

	h.invalidate(r, id)
	response.OK(w, id)
}

// Update handles POST /api/product/update (user token).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProduct
	if apiErr := decodeBody(r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	rows, err := h.products.Update(r.Context(), req)
	if err != nil {
		response.Error(w, storeError(h.log, err, "failed to update product"))
		return
	}

	h.invalidate(r, req.ID)
	response.OK(w, rows)
}

// invalidate drops the cached entries a catalog write may have staled.
func (h *ProductHandler) invalidate(r *http.Request, id uint64) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(r.Context(), productKey(id)); err != nil {
		h.log.Warn("cache invalidation failed", zap.Error(err))
	}
	if err := h.cache.Delete(r.Context(), productAllKey); err != nil {
		h.log.Warn("cache invalidation failed", zap.Error(err))
	}
}

func productKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

// writeCachedJSON writes pre-marshaled JSON from the cache.
func writeCachedJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
