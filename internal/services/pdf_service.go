package services

import (
	"bytes"
	"fmt"

	"go-barcode-engine/internal/config"
	"go-barcode-engine/internal/logger"

	"github.com/jung-kurt/gofpdf"
)

// LabelSheetRequest describes one PDF label sheet: a list of values rendered
// with shared generation parameters into a printable grid.
type LabelSheetRequest struct {
	Values  []string
	Params  GenerateRequest
	Title   string
	Columns int
	Rows    int
}

// LabelSheetService lays rendered barcodes out on printable PDF sheets.
type LabelSheetService struct {
	barcodes *BarcodeService
	cfg      config.PDFConfig
	log      *logger.StructuredLogger
}

// NewLabelSheetService creates a label-sheet service on top of the barcode
// service.
func NewLabelSheetService(barcodes *BarcodeService, cfg config.PDFConfig, log *logger.StructuredLogger) *LabelSheetService {
	return &LabelSheetService{barcodes: barcodes, cfg: cfg, log: log}
}

// Generate renders every value as a PNG barcode and places them on a grid
// of labels, adding pages as needed.
func (s *LabelSheetService) Generate(req LabelSheetRequest) ([]byte, error) {
	if len(req.Values) == 0 {
		return nil, fmt.Errorf("label sheet needs at least one value")
	}

	cols := req.Columns
	if cols <= 0 {
		cols = s.cfg.Columns
	}
	rows := req.Rows
	if rows <= 0 {
		rows = s.cfg.Rows
	}
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("label grid %dx%d is not positive", cols, rows)
	}

	paper := s.cfg.PaperSize
	if paper == "" {
		paper = "A4"
	}
	margin := s.cfg.MarginMM

	pdf := gofpdf.New("P", "mm", paper, "")
	pdf.SetMargins(margin, margin, margin)

	pageW, pageH := pdf.GetPageSize()
	cellW := (pageW - 2*margin) / float64(cols)
	cellH := (pageH - 2*margin) / float64(rows)

	perPage := cols * rows
	for i, value := range req.Values {
		if i%perPage == 0 {
			pdf.AddPage()
			if req.Title != "" {
				pdf.SetFont("Arial", "B", 12)
				pdf.Text(margin, margin-2, req.Title)
			}
		}

		params := req.Params
		params.Value = value
		params.Format = "png"
		result, err := s.barcodes.Generate(params)
		if err != nil {
			return nil, fmt.Errorf("failed to render label for %q: %w", value, err)
		}

		name := fmt.Sprintf("label-%d", i)
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(result.Image))

		slot := i % perPage
		x := margin + float64(slot%cols)*cellW
		y := margin + float64(slot/cols)*cellH

		// Fit the image into the cell, keeping aspect ratio and a small pad.
		pad := 2.0
		maxW := cellW - 2*pad
		maxH := cellH - 2*pad
		w := maxW
		h := w * float64(result.Height) / float64(result.Width)
		if h > maxH {
			h = maxH
			w = h * float64(result.Width) / float64(result.Height)
		}
		pdf.ImageOptions(name, x+pad+(maxW-w)/2, y+pad+(maxH-h)/2, w, h, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.log.Debug("label sheet generated", map[string]interface{}{
		"labels": len(req.Values),
		"pages":  pdf.PageCount(),
	})
	return buf.Bytes(), nil
}
