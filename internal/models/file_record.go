// Package models contains domain types for the Soulfile Vault.
package models

// Domain is the classification tag assigned to an ingested file.
type Domain string

const (
	DomainImage    Domain = "image"
	DomainDocument Domain = "document"
)

// FileRecord is one row of the vault's metadata table.
// Records are append-only: created once per upload, never updated or removed.
type FileRecord struct {
	Name           string  `json:"name" msgpack:"name"`
	Path           string  `json:"path" msgpack:"path"`
	CompressedSize float64 `json:"compressedSize" msgpack:"compressedSize"` // kilobytes
	Domain         Domain  `json:"domain" msgpack:"domain"`
}
