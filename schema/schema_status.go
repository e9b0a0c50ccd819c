package schema

import "time"

// StoreStatus represents the status of the dogs store.
type StoreStatus struct {
	Backend         string    `json:"backend"`
	Location        string    `json:"location"`
	Connected       bool      `json:"connected"`
	TotalRecords    int       `json:"total_records"`
	MaxID           int64     `json:"max_id"`
	LastWriteTime   time.Time `json:"last_write_time"`
	DocumentVersion int       `json:"document_version"`
	SizeBytes       int64     `json:"size_bytes"`
}
