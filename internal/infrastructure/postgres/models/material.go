package models

import "time"

type MaterialModel struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description string
	Subject     string `gorm:"index:idx_material_subject"`
	Level       string `gorm:"index:idx_material_level"`
	Year        string
	Price       float64
	StorageKey  string
	FileName    string
	FileSize    string
	Pages       int
	CreatedAt   time.Time `gorm:"index:idx_material_created"`
	UpdatedAt   time.Time
}
