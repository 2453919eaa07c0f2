package postgres

import (
	"log"

	"github.com/somaprep/materials-service/internal/config"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.MaterialsConfig) *gorm.DB {
	dsn := cfg.MaterialsDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.MaterialModel{}, &models.TransactionModel{}, &models.SaleModel{}, &models.PurchaseModel{})

	return db
}
