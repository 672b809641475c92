package models

// ExportVersion is the format tag written into every backup
const ExportVersion = "1.0.0"

// ExportData is the portable backup document
type ExportData struct {
	Version    string         `json:"version"`
	ExportedAt int64          `json:"exportedAt"` // epoch milliseconds
	UserName   *string        `json:"userName"`
	Collection []SavedPokemon `json:"collection"`
	Progress   UserProgress   `json:"progress"`
}
