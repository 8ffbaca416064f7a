package handlers

import (
	"errors"
	"net/http"

	"go-barcode-engine/internal/models"
	"go-barcode-engine/internal/repository"
	"go-barcode-engine/internal/services"
	"go-barcode-engine/internal/symbology"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PresetHandler struct {
	presetRepo     *repository.PresetRepository
	barcodeService *services.BarcodeService
}

func NewPresetHandler(presetRepo *repository.PresetRepository, barcodeService *services.BarcodeService) *PresetHandler {
	return &PresetHandler{
		presetRepo:     presetRepo,
		barcodeService: barcodeService,
	}
}

func (h *PresetHandler) List(c *gin.Context) {
	presets, err := h.presetRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, presets)
}

func (h *PresetHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	preset, err := h.presetRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, preset)
}

func (h *PresetHandler) Create(c *gin.Context) {
	var preset models.BarcodePreset
	if err := c.ShouldBindJSON(&preset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if preset.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preset name is required"})
		return
	}
	if _, err := symbology.ParseKind(preset.Symbology); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.presetRepo.Create(&preset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, preset)
}

func (h *PresetHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	existing, err := h.presetRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var preset models.BarcodePreset
	if err := c.ShouldBindJSON(&preset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	preset.PresetID = existing.PresetID
	if _, err := symbology.ParseKind(preset.Symbology); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.presetRepo.Update(&preset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, preset)
}

func (h *PresetHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.presetRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Render generates a barcode using a stored preset; the value comes from
// the query or the preset's default.
func (h *PresetHandler) Render(c *gin.Context) {
	name := c.Param("name")
	preset, err := h.presetRepo.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	value := c.Query("value")
	if value == "" && preset.DefaultValue != nil {
		value = *preset.DefaultValue
	}
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value is required"})
		return
	}

	result, err := h.barcodeService.Generate(services.GenerateRequest{
		Value:         value,
		Symbology:     preset.Symbology,
		DPI:           preset.DPI,
		XDimension:    preset.XDimension,
		TargetWidth:   preset.TargetWidth,
		BarHeight:     preset.BarHeight,
		QuietZone:     preset.QuietZone,
		LabelPosition: preset.LabelPosition,
		ShowEncoding:  preset.ShowEncoding,
		Format:        preset.Format,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename="+name+"."+imageExtension(result.ContentType))
	c.Data(http.StatusOK, result.ContentType, result.Image)
}
