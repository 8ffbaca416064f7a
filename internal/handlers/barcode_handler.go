package handlers

import (
	"net/http"

	"go-barcode-engine/internal/services"

	"github.com/gin-gonic/gin"
)

type BarcodeHandler struct {
	barcodeService *services.BarcodeService
	labelSheets    *services.LabelSheetService
}

func NewBarcodeHandler(barcodeService *services.BarcodeService, labelSheets *services.LabelSheetService) *BarcodeHandler {
	return &BarcodeHandler{
		barcodeService: barcodeService,
		labelSheets:    labelSheets,
	}
}

// Generate renders a barcode image from query parameters.
func (h *BarcodeHandler) Generate(c *gin.Context) {
	var query generateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.barcodeService.Generate(query.toRequest())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=barcode."+imageExtension(result.ContentType))
	c.Data(http.StatusOK, result.ContentType, result.Image)
}

// Vectors returns the raw bar widths in pixel units without image bytes.
func (h *BarcodeHandler) Vectors(c *gin.Context) {
	var query generateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.barcodeService.Generate(query.toRequest())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vectorsResponse{
		Width:                result.Width,
		Height:               result.Height,
		XDimension:           result.XDimension,
		XDimensionOverridden: result.XDimensionOverridden,
		Vectors:              result.Vectors,
	})
}

// ZPL returns the barcode as ZPL II printer commands.
func (h *BarcodeHandler) ZPL(c *gin.Context) {
	var query generateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zpl, err := h.barcodeService.GenerateZPL(query.toRequest())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(zpl))
}

// labelSheetBody is the JSON body of the label-sheet endpoint.
type labelSheetBody struct {
	Values  []string `json:"values" binding:"required"`
	Title   string   `json:"title"`
	Columns int      `json:"columns"`
	Rows    int      `json:"rows"`

	Symbology     string `json:"symbology" binding:"required"`
	DPI           int    `json:"dpi"`
	XDimension    int    `json:"xDimension"`
	TargetWidth   int    `json:"targetWidth"`
	BarHeight     int    `json:"barHeight"`
	LabelPosition string `json:"labelPosition"`
	ShowEncoding  bool   `json:"showEncoding"`
}

// LabelSheet renders a printable PDF grid of barcodes.
func (h *BarcodeHandler) LabelSheet(c *gin.Context) {
	var body labelSheetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pdf, err := h.labelSheets.Generate(services.LabelSheetRequest{
		Values:  body.Values,
		Title:   body.Title,
		Columns: body.Columns,
		Rows:    body.Rows,
		Params: services.GenerateRequest{
			Symbology:     body.Symbology,
			DPI:           body.DPI,
			XDimension:    body.XDimension,
			TargetWidth:   body.TargetWidth,
			BarHeight:     body.BarHeight,
			LabelPosition: body.LabelPosition,
			ShowEncoding:  body.ShowEncoding,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=labels.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func imageExtension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return "jpg"
	case "image/bmp":
		return "bmp"
	default:
		return "png"
	}
}
