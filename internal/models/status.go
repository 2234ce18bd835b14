package models

// Mode is the resolved connectivity state of a session.
type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

func (m Mode) Resolved() bool {
	return m == ModeOnline || m == ModeOffline
}

// ListResult is the uniform shape returned by the repository for reads.
type ListResult struct {
	Data      []Product `json:"data"`
	IsLoading bool      `json:"isLoading"`
	IsError   bool      `json:"isError"`
	Err       error     `json:"-"`
}

type StockStatus string

const (
	StockOut StockStatus = "out_of_stock"
	StockLow StockStatus = "low_stock"
	StockIn  StockStatus = "in_stock"
)
