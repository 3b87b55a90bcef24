package models

import "fmt"

// Upload is a single uploaded item as received at the boundary.
type Upload struct {
	Name      string
	MediaType string // declared by the client, may be empty
	Data      []byte
}

// ItemStatus is the outcome of processing one upload in a batch.
type ItemStatus string

const (
	ItemStatusComplete ItemStatus = "complete"
	ItemStatusError    ItemStatus = "error"
)

// ItemResult reports what happened to one upload of a batch.
type ItemResult struct {
	Name   string     `json:"name"`
	Status ItemStatus `json:"status"`
	Path   string     `json:"path,omitempty"`
	SizeKB float64    `json:"sizeKb"`
	Domain Domain     `json:"domain,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// BatchResult summarises a processed upload batch.
type BatchResult struct {
	ID       string       `json:"id"`
	Items    []ItemResult `json:"items"`
	Complete int          `json:"complete"`
	Failed   int          `json:"failed"`
}

// Summary is a one-line, human-readable outcome.
func (r ItemResult) Summary() string {
	if r.Status != ItemStatusComplete {
		return fmt.Sprintf("Failed to process %s: %s", r.Name, r.Error)
	}
	return fmt.Sprintf("Compressed %s to %.1fKB", r.Name, r.SizeKB)
}
