package domain

import "time"

// Material is one purchasable exam-preparation PDF.
type Material struct {
	ID          string
	Title       string
	Description string
	Subject     string
	Level       string
	Year        string
	Price       float64
	StorageKey  string
	FileName    string
	FileSize    string
	Pages       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
