package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/usecase"
)

// 50 MB cap on uploaded PDFs.
const maxPDFSize = 50 << 20

type MaterialHandler struct {
	materialUsecase usecase.MaterialUsecase
	validate        *validator.Validate
}

func NewMaterialHandler(materialUsecase usecase.MaterialUsecase) *MaterialHandler {
	return &MaterialHandler{
		materialUsecase: materialUsecase,
		validate:        validator.New(),
	}
}

func (h *MaterialHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/materials", h.listMaterials)
	router.GET("/api/materials/:id", h.getMaterial)
	router.GET("/api/materials/:id/download", h.downloadMaterial)
	router.POST("/api/materials", h.createMaterial)
	router.PUT("/api/materials/:id", h.updateMaterial)
	router.DELETE("/api/materials/:id", h.deleteMaterial)
}

func (h *MaterialHandler) listMaterials(c *gin.Context) {
	var (
		materials []*domain.Material
		err       error
	)

	switch {
	case c.Query("subject") != "":
		materials, err = h.materialUsecase.GetMaterialsBySubject(c.Query("subject"))
	case c.Query("level") != "":
		materials, err = h.materialUsecase.GetMaterialsByLevel(c.Query("level"))
	default:
		materials, err = h.materialUsecase.GetMaterials()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

func (h *MaterialHandler) getMaterial(c *gin.Context) {
	material, err := h.materialUsecase.GetMaterialByID(c.Param("id"))
	if err != nil {
		respondMaterialError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) downloadMaterial(c *gin.Context) {
	url, err := h.materialUsecase.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMaterialError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

type materialForm struct {
	Title       string  `form:"title" validate:"required"`
	Description string  `form:"description"`
	Subject     string  `form:"subject" validate:"required"`
	Level       string  `form:"level"`
	Year        string  `form:"year"`
	Price       float64 `form:"price" validate:"gte=0"`
	Pages       int     `form:"pages"`
}

func (h *MaterialHandler) createMaterial(c *gin.Context) {
	var form materialForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pdf file is required"})
		return
	}
	if fileHeader.Size > maxPDFSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "pdf exceeds size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read pdf"})
		return
	}
	defer file.Close()

	pdf, err := io.ReadAll(io.LimitReader(file, maxPDFSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read pdf"})
		return
	}

	material, err := h.materialUsecase.CreateMaterial(c.Request.Context(), &usecase.CreateMaterialInput{
		Title:       form.Title,
		Description: form.Description,
		Subject:     form.Subject,
		Level:       form.Level,
		Year:        form.Year,
		Price:       form.Price,
		FileName:    fileHeader.Filename,
		Pages:       form.Pages,
		PDF:         pdf,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, material)
}

type updateMaterialRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Subject     string  `json:"subject" validate:"required"`
	Level       string  `json:"level"`
	Year        string  `json:"year"`
	Price       float64 `json:"price" validate:"gte=0"`
	Pages       int     `json:"pages"`
}

func (h *MaterialHandler) updateMaterial(c *gin.Context) {
	var req updateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.materialUsecase.UpdateMaterial(c.Param("id"), &usecase.UpdateMaterialInput{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Level:       req.Level,
		Year:        req.Year,
		Price:       req.Price,
		Pages:       req.Pages,
	})
	if err != nil {
		respondMaterialError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) deleteMaterial(c *gin.Context) {
	if err := h.materialUsecase.DeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		respondMaterialError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func respondMaterialError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMaterialNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
