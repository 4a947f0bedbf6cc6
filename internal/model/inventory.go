package model

// Inventory is a stock count for one product in one warehouse.
// The (Rid, Pid) pair is the key; Amount is never negative.
type Inventory struct {
	Rid    uint64 `json:"rid"`
	Pid    uint64 `json:"pid"`
	Amount uint64 `json:"amount"`
}

// InventoryDetail is an inventory row joined with its product and warehouse.
type InventoryDetail struct {
	Rid        uint64 `json:"rid"`
	Pid        uint64 `json:"pid"`
	Pname      string `json:"pname"`
	Psize      string `json:"psize"`
	Pprice     uint64 `json:"pprice"`
	PmaxAmount uint64 `json:"pmax_amount"`
	PminAmount uint64 `json:"pmin_amount"`
	Rname      string `json:"rname"`
	Amount     uint64 `json:"amount"`
}

// AdjustInventory is the body for the inventory add and reduce operations.
type AdjustInventory struct {
	Rid    uint64 `json:"rid"`
	Pid    uint64 `json:"pid"`
	Amount uint64 `json:"amount"`
}
