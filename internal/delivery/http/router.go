package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/somaprep/materials-service/internal/delivery/http/handlers"
	"github.com/somaprep/materials-service/internal/usecase"
	"github.com/somaprep/materials-service/internal/usecase/payment"
)

type RouterDeps struct {
	PaymentUsecase  payment.PaymentUsecase
	MaterialUsecase usecase.MaterialUsecase
	SaleUsecase     usecase.SaleUsecase
	PurchaseUsecase usecase.PurchaseUsecase
	CallbackSecret  string
	Env             string
}

// NewRouter assembles the public surface: payment, materials, sales and
// purchases APIs plus health and metrics endpoints.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Env != "prod" {
		router.Use(gin.Logger())
	}

	handlers.NewPaymentHandler(deps.PaymentUsecase, deps.CallbackSecret).RegisterRoutes(router)
	handlers.NewMaterialHandler(deps.MaterialUsecase).RegisterRoutes(router)
	handlers.NewSaleHandler(deps.SaleUsecase).RegisterRoutes(router)
	handlers.NewPurchaseHandler(deps.PurchaseUsecase).RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
