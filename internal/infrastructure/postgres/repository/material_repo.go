package repository

import (
	"errors"
	"fmt"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/mappers"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultMaterialRepository struct {
	DB *gorm.DB
}

func NewDefaultMaterialRepository(db *gorm.DB) *DefaultMaterialRepository {
	return &DefaultMaterialRepository{DB: db}
}

func (r *DefaultMaterialRepository) CreateMaterial(material *domain.Material) error {
	if err := r.DB.Create(mappers.ToGORMMaterial(material)).Error; err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

func (r *DefaultMaterialRepository) GetMaterialByID(id string) (*domain.Material, error) {
	var materialModel models.MaterialModel
	if err := r.DB.First(&materialModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, err
	}
	return mappers.ToDomainMaterial(&materialModel), nil
}

func (r *DefaultMaterialRepository) GetMaterials() ([]*domain.Material, error) {
	return r.findMaterials(r.DB)
}

func (r *DefaultMaterialRepository) GetMaterialsBySubject(subject string) ([]*domain.Material, error) {
	return r.findMaterials(r.DB.Where("subject = ?", subject))
}

func (r *DefaultMaterialRepository) GetMaterialsByLevel(level string) ([]*domain.Material, error) {
	return r.findMaterials(r.DB.Where("level = ?", level))
}

func (r *DefaultMaterialRepository) findMaterials(query *gorm.DB) ([]*domain.Material, error) {
	var materialModels []models.MaterialModel
	if err := query.Order("created_at DESC").Find(&materialModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find materials: %w", err)
	}

	materials := make([]*domain.Material, len(materialModels))
	for i, materialModel := range materialModels {
		materials[i] = mappers.ToDomainMaterial(&materialModel)
	}
	return materials, nil
}

func (r *DefaultMaterialRepository) UpdateMaterial(material *domain.Material) error {
	res := r.DB.Model(&models.MaterialModel{}).
		Where("id = ?", material.ID).
		Updates(mappers.ToGORMMaterial(material))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

func (r *DefaultMaterialRepository) DeleteMaterial(id string) error {
	res := r.DB.Delete(&models.MaterialModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}
