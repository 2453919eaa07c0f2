package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/somaprep/materials-service/internal/app/background"
	"github.com/somaprep/materials-service/internal/config"
	httpdelivery "github.com/somaprep/materials-service/internal/delivery/http"
	"github.com/somaprep/materials-service/internal/infrastructure/daraja"
	publisher "github.com/somaprep/materials-service/internal/infrastructure/kafka"
	"github.com/somaprep/materials-service/internal/infrastructure/metrics"
	"github.com/somaprep/materials-service/internal/infrastructure/migrate"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/repository"
	"github.com/somaprep/materials-service/internal/infrastructure/s3"
	"github.com/somaprep/materials-service/internal/usecase"
	"github.com/somaprep/materials-service/internal/usecase/payment"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.MaterialsDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.MaterialsDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repos
	transactionRepo := repository.NewDefaultTransactionRepository(db)
	saleRepo := repository.NewDefaultSaleRepository(db)
	purchaseRepo := repository.NewDefaultPurchaseRepository(db)
	materialRepo := repository.NewDefaultMaterialRepository(db)

	// Init payment gateway client. Refuses blank or placeholder credentials.
	gateway, err := daraja.NewClient(cfg.Daraja)
	if err != nil {
		log.Fatalf("failed to init daraja client: %v", err)
	}

	// Init kafka publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	kafkaPublisher := publisher.NewKafkaPublisher(brokers)
	paymentPublisher := publisher.NewPaymentEventPublisher(kafkaPublisher, cfg.KafkaService.Topic)

	// Init PDF storage
	pdfStorage, err := s3.NewPDFStorage(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("failed to init pdf storage: %v", err)
	}

	paymentMetrics := metrics.NewPaymentMetrics()

	// Init usecases
	paymentUsecase := payment.NewDefaultPaymentUsecase(transactionRepo, gateway, paymentPublisher, paymentMetrics, cfg.Daraja.Environment)
	materialUsecase, err := usecase.NewDefaultMaterialUsecase(materialRepo, pdfStorage)
	if err != nil {
		log.Fatalf("failed to init material usecase: %v", err)
	}
	saleUsecase := usecase.NewDefaultSaleUsecase(saleRepo)
	purchaseUsecase := usecase.NewDefaultPurchaseUsecase(purchaseRepo)

	// Background monitoring
	tasks := background.NewBackgroundTasks(transactionRepo, paymentMetrics)
	tasks.StartAll(context.Background())

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		PaymentUsecase:  paymentUsecase,
		MaterialUsecase: materialUsecase,
		SaleUsecase:     saleUsecase,
		PurchaseUsecase: purchaseUsecase,
		CallbackSecret:  cfg.Daraja.CallbackSecret,
		Env:             cfg.Env,
	})

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
