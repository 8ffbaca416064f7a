package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go-barcode-engine/internal/render"
	"go-barcode-engine/internal/services"
	"go-barcode-engine/internal/symbology"

	"github.com/gin-gonic/gin"
)

// generateQuery binds the barcode generation parameters shared by the
// image, vectors and ZPL endpoints.
type generateQuery struct {
	Value         string `form:"value" binding:"required"`
	Symbology     string `form:"symbology" binding:"required"`
	DPI           int    `form:"dpi"`
	XDimension    int    `form:"x_dimension"`
	TargetWidth   int    `form:"target_width"`
	BarHeight     int    `form:"bar_height"`
	QuietZone     string `form:"quiet_zone"` // "true"/"false"; empty keeps the default
	LabelPosition string `form:"label"`
	LabelText     string `form:"label_text"`
	ShowEncoding  bool   `form:"show_encoding"`
	Format        string `form:"format"`
}

func (q *generateQuery) toRequest() services.GenerateRequest {
	req := services.GenerateRequest{
		Value:         q.Value,
		Symbology:     q.Symbology,
		DPI:           q.DPI,
		XDimension:    q.XDimension,
		TargetWidth:   q.TargetWidth,
		BarHeight:     q.BarHeight,
		LabelPosition: q.LabelPosition,
		LabelText:     q.LabelText,
		ShowEncoding:  q.ShowEncoding,
		Format:        q.Format,
	}
	if q.QuietZone != "" {
		quiet := q.QuietZone == "true"
		req.QuietZone = &quiet
	}
	return req
}

// vectorsResponse is the JSON shape of the raw bar-width endpoint.
type vectorsResponse struct {
	Width                int             `json:"width"`
	Height               int             `json:"height"`
	XDimension           int             `json:"xDimension"`
	XDimensionOverridden bool            `json:"xDimensionOverridden"`
	Vectors              []render.Vector `json:"vectors"`
}

// respondError maps the typed error kinds to HTTP statuses: bad input data
// is 422, bad configuration 400, everything else 500.
func respondError(c *gin.Context, err error) {
	var encErr *symbology.EncodingError
	if errors.As(err, &encErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	var cfgErr *render.ConfigurationError
	if errors.As(err, &cfgErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var fmtErr *render.UnsupportedFormatError
	if errors.As(err, &fmtErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
