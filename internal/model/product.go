package model

// Product is a catalog entry. Price is the reference unit price; orders copy it
// at creation time and are not affected by later changes.
type Product struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Price     uint64 `json:"price"`
	MaxAmount uint64 `json:"max_amount"`
	MinAmount uint64 `json:"min_amount"`
}

// InsertProduct is the body for creating a product.
type InsertProduct struct {
	Name      string `json:"name"`
	Size      string `json:"size"`
	Price     uint64 `json:"price"`
	MaxAmount uint64 `json:"max_amount"`
	MinAmount uint64 `json:"min_amount"`
}

// UpdateProduct is the body for a partial product update; nil fields keep their value.
type UpdateProduct struct {
	ID        uint64  `json:"id"`
	Name      *string `json:"name"`
	Size      *string `json:"size"`
	Price     *uint64 `json:"price"`
	MaxAmount *uint64 `json:"max_amount"`
	MinAmount *uint64 `json:"min_amount"`
}
