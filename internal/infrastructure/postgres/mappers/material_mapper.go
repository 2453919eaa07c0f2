package mappers

import (
	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/models"
)

func ToDomainMaterial(model *models.MaterialModel) *domain.Material {
	return &domain.Material{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Subject:     model.Subject,
		Level:       model.Level,
		Year:        model.Year,
		Price:       model.Price,
		StorageKey:  model.StorageKey,
		FileName:    model.FileName,
		FileSize:    model.FileSize,
		Pages:       model.Pages,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMMaterial(material *domain.Material) *models.MaterialModel {
	return &models.MaterialModel{
		ID:          material.ID,
		Title:       material.Title,
		Description: material.Description,
		Subject:     material.Subject,
		Level:       material.Level,
		Year:        material.Year,
		Price:       material.Price,
		StorageKey:  material.StorageKey,
		FileName:    material.FileName,
		FileSize:    material.FileSize,
		Pages:       material.Pages,
		CreatedAt:   material.CreatedAt,
		UpdatedAt:   material.UpdatedAt,
	}
}
