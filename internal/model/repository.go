package model

// Repository is a physical warehouse.
type Repository struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// InsertRepository is the body for creating a warehouse.
type InsertRepository struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateRepository is the body for a partial warehouse update.
type UpdateRepository struct {
	ID          uint64  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
