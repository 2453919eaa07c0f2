package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/somaprep/materials-service/internal/domain"
)

// ObjectStorage is the slice of the PDF store the material flows need.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, pdf []byte) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type CreateMaterialInput struct {
	Title       string
	Description string
	Subject     string
	Level       string
	Year        string
	Price       float64
	FileName    string
	Pages       int
	PDF         []byte
}

type UpdateMaterialInput struct {
	Title       string
	Description string
	Subject     string
	Level       string
	Year        string
	Price       float64
	Pages       int
}

type MaterialUsecase interface {
	CreateMaterial(ctx context.Context, input *CreateMaterialInput) (*domain.Material, error)
	GetMaterialByID(id string) (*domain.Material, error)
	GetMaterials() ([]*domain.Material, error)
	GetMaterialsBySubject(subject string) ([]*domain.Material, error)
	GetMaterialsByLevel(level string) ([]*domain.Material, error)
	UpdateMaterial(id string, input *UpdateMaterialInput) (*domain.Material, error)
	DeleteMaterial(ctx context.Context, id string) error
	DownloadURL(ctx context.Context, id string) (string, error)
}

const downloadURLTTL = 15 * time.Minute

type DefaultMaterialUsecase struct {
	MaterialRepo domain.MaterialRepository
	Storage      ObjectStorage
	newID        func() string
}

func NewDefaultMaterialUsecase(materialRepo domain.MaterialRepository, storage ObjectStorage) (*DefaultMaterialUsecase, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	return &DefaultMaterialUsecase{
		MaterialRepo: materialRepo,
		Storage:      storage,
		newID:        idGenerator,
	}, nil
}

// CreateMaterial uploads the PDF first and records the material only after
// the object exists, so a listed material always has a downloadable body.
func (uc *DefaultMaterialUsecase) CreateMaterial(ctx context.Context, input *CreateMaterialInput) (*domain.Material, error) {
	if input.Title == "" || input.Subject == "" || input.Price < 0 || len(input.PDF) == 0 {
		return nil, domain.ErrValidation
	}

	id := uc.newID()
	storageKey := fmt.Sprintf("materials/%s.pdf", id)

	if err := uc.Storage.Upload(ctx, storageKey, input.PDF); err != nil {
		return nil, err
	}

	now := time.Now()
	material := &domain.Material{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Subject:     input.Subject,
		Level:       input.Level,
		Year:        input.Year,
		Price:       input.Price,
		StorageKey:  storageKey,
		FileName:    input.FileName,
		FileSize:    formatFileSize(len(input.PDF)),
		Pages:       input.Pages,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.MaterialRepo.CreateMaterial(material); err != nil {
		// The record failed, so the object must not linger.
		if delErr := uc.Storage.Delete(ctx, storageKey); delErr != nil {
			slog.Error("failed to clean up orphaned object", "key", storageKey, "error", delErr.Error())
		}
		return nil, err
	}

	slog.Info("material created", "material_id", id, "subject", input.Subject, "title", input.Title)
	return material, nil
}

func (uc *DefaultMaterialUsecase) GetMaterialByID(id string) (*domain.Material, error) {
	return uc.MaterialRepo.GetMaterialByID(id)
}

func (uc *DefaultMaterialUsecase) GetMaterials() ([]*domain.Material, error) {
	return uc.MaterialRepo.GetMaterials()
}

func (uc *DefaultMaterialUsecase) GetMaterialsBySubject(subject string) ([]*domain.Material, error) {
	return uc.MaterialRepo.GetMaterialsBySubject(subject)
}

func (uc *DefaultMaterialUsecase) GetMaterialsByLevel(level string) ([]*domain.Material, error) {
	return uc.MaterialRepo.GetMaterialsByLevel(level)
}

func (uc *DefaultMaterialUsecase) UpdateMaterial(id string, input *UpdateMaterialInput) (*domain.Material, error) {
	material, err := uc.MaterialRepo.GetMaterialByID(id)
	if err != nil {
		return nil, err
	}

	material.Title = input.Title
	material.Description = input.Description
	material.Subject = input.Subject
	material.Level = input.Level
	material.Year = input.Year
	material.Price = input.Price
	material.Pages = input.Pages
	material.UpdatedAt = time.Now()

	if err := uc.MaterialRepo.UpdateMaterial(material); err != nil {
		return nil, err
	}
	return material, nil
}

// DeleteMaterial removes the record first; the object delete is best-effort
// since an orphaned object is harmless while a dangling record is not.
func (uc *DefaultMaterialUsecase) DeleteMaterial(ctx context.Context, id string) error {
	material, err := uc.MaterialRepo.GetMaterialByID(id)
	if err != nil {
		return err
	}

	if err := uc.MaterialRepo.DeleteMaterial(id); err != nil {
		return err
	}

	if err := uc.Storage.Delete(ctx, material.StorageKey); err != nil {
		slog.Error("failed to delete material object", "key", material.StorageKey, "error", err.Error())
	}
	return nil
}

func (uc *DefaultMaterialUsecase) DownloadURL(ctx context.Context, id string) (string, error) {
	material, err := uc.MaterialRepo.GetMaterialByID(id)
	if err != nil {
		return "", err
	}
	return uc.Storage.SignedURL(ctx, material.StorageKey, downloadURLTTL)
}

func formatFileSize(size int) string {
	const mb = 1 << 20
	const kb = 1 << 10
	switch {
	case size >= mb:
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	case size >= kb:
		return fmt.Sprintf("%.0f KB", float64(size)/kb)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
