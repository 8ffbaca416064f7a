package services

import (
	"fmt"

	"go-barcode-engine/internal/config"
	"go-barcode-engine/internal/imagemeta"
	"go-barcode-engine/internal/logger"
	"go-barcode-engine/internal/pattern"
	"go-barcode-engine/internal/render"
	"go-barcode-engine/internal/symbology"
	"go-barcode-engine/internal/zpl"
)

// SurfaceFactory builds the drawing surface for a render pass at a given
// DPI. Injected so tests can substitute a recording surface.
type SurfaceFactory func(dpi int) render.Surface

// Barcode is the stateful façade over one logical barcode: a value, a
// symbology and rendering options, plus a lazily rendered, cached result.
// Change tracking is a version counter: every observable mutation bumps it
// and the cache is only rebuilt when the rendered version falls behind.
//
// A Barcode is not safe for concurrent use; callers needing concurrency
// serialize access or create one instance per barcode.
type Barcode struct {
	value string
	kind  symbology.Kind
	opts  render.Options

	surfaces SurfaceFactory

	version         uint64
	renderedVersion uint64
	cached          *render.Result
	encoding        *pattern.Encoding
}

// NewBarcode creates a barcode with the given value and symbology and
// default rendering options.
func NewBarcode(value string, kind symbology.Kind, opts render.Options) *Barcode {
	return &Barcode{
		value: value,
		kind:  kind,
		opts:  opts,
		surfaces: func(dpi int) render.Surface {
			return render.NewImageSurface(dpi)
		},
		version: 1,
	}
}

// SetSurfaceFactory replaces the drawing-surface factory.
func (b *Barcode) SetSurfaceFactory(f SurfaceFactory) {
	b.surfaces = f
	b.version++
}

// SetValue replaces the encoded value.
func (b *Barcode) SetValue(value string) {
	if b.value != value {
		b.value = value
		b.version++
	}
}

// SetSymbology replaces the symbology.
func (b *Barcode) SetSymbology(kind symbology.Kind) {
	if b.kind != kind {
		b.kind = kind
		b.version++
	}
}

// SetOptions replaces the rendering options wholesale.
func (b *Barcode) SetOptions(opts render.Options) {
	if b.opts != opts {
		b.opts = opts
		b.version++
	}
}

// Options returns the current rendering options.
func (b *Barcode) Options() render.Options {
	return b.opts
}

// SetDPI sets the output resolution.
func (b *Barcode) SetDPI(dpi int) {
	if b.opts.DPI != dpi {
		b.opts.DPI = dpi
		b.version++
	}
}

// SetXDimension sets the narrow-bar width in pixels.
func (b *Barcode) SetXDimension(x int) {
	if b.opts.XDimension != x {
		b.opts.XDimension = x
		b.version++
	}
}

// SetTargetWidth sets the desired total pixel width.
func (b *Barcode) SetTargetWidth(w int) {
	if b.opts.TargetWidth != w {
		b.opts.TargetWidth = w
		b.version++
	}
}

// SetFormat sets the output image format.
func (b *Barcode) SetFormat(f render.Format) {
	if b.opts.Format != f {
		b.opts.Format = f
		b.version++
	}
}

// Render encodes and lays out the barcode, reusing the cached result while
// nothing observable has changed.
func (b *Barcode) Render() (*render.Result, error) {
	if b.cached != nil && b.renderedVersion == b.version {
		return b.cached, nil
	}

	if b.value == "" {
		return nil, &render.ConfigurationError{Field: "value", Reason: "must not be empty"}
	}

	enc, err := symbology.Encode(b.kind, b.value)
	if err != nil {
		return nil, err
	}

	opts := b.opts
	if opts.LabelText == "" {
		opts.LabelText = b.value
	}

	engine := render.NewEngine(b.surfaces(opts.DPI))
	result, err := engine.Render(enc, opts, b.kind.IsEANFamily())
	if err != nil {
		return nil, err
	}
	result.Data = imagemeta.InjectDPI(result.Data, opts.Format, opts.DPI)

	b.encoding = enc
	b.cached = result
	b.renderedVersion = b.version
	return result, nil
}

// Image returns the encoded image bytes, rendering if needed.
func (b *Barcode) Image() ([]byte, error) {
	result, err := b.Render()
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Vectors returns the module widths in pixel units, rendering if needed.
func (b *Barcode) Vectors() ([]render.Vector, error) {
	result, err := b.Render()
	if err != nil {
		return nil, err
	}
	return result.Vectors, nil
}

// ZPL returns the barcode as ZPL II commands. The module sequence comes
// from the same cached render pass as the image.
func (b *Barcode) ZPL() (string, error) {
	result, err := b.Render()
	if err != nil {
		return "", err
	}
	return zpl.Export(b.encoding, result.XDimension, b.opts.BarHeight), nil
}

// GenerateRequest describes one barcode generation call at the service
// boundary. Zero fields fall back to the configured defaults.
type GenerateRequest struct {
	Value         string
	Symbology     string
	DPI           int
	XDimension    int
	TargetWidth   int
	BarHeight     int
	QuietZone     *bool
	LabelPosition string
	LabelText     string
	ShowEncoding  bool
	Format        string
}

// GenerateResult is the public outcome of a generation call.
type GenerateResult struct {
	Image                []byte
	ContentType          string
	Width                int
	Height               int
	XDimension           int
	XDimensionOverridden bool
	Vectors              []render.Vector
}

// BarcodeService renders barcodes from request parameters, applying the
// configured defaults.
type BarcodeService struct {
	defaults config.BarcodeConfig
	log      *logger.StructuredLogger
}

// NewBarcodeService creates a barcode service with the given defaults.
func NewBarcodeService(defaults config.BarcodeConfig, log *logger.StructuredLogger) *BarcodeService {
	return &BarcodeService{defaults: defaults, log: log}
}

func contentType(f render.Format) string {
	switch f {
	case render.FormatJPEG:
		return "image/jpeg"
	case render.FormatBMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}

func parseLabelPosition(s string) (render.LabelPosition, error) {
	switch s {
	case "", "below":
		return render.LabelBelow, nil
	case "above":
		return render.LabelAbove, nil
	case "embedded":
		return render.LabelEmbedded, nil
	case "hidden":
		return render.LabelHidden, nil
	default:
		return 0, fmt.Errorf("unknown label position %q", s)
	}
}

func parseFormat(s string) (render.Format, error) {
	switch s {
	case "", "png":
		return render.FormatPNG, nil
	case "jpeg", "jpg":
		return render.FormatJPEG, nil
	case "bmp":
		return render.FormatBMP, nil
	default:
		return "", &render.UnsupportedFormatError{Format: render.Format(s)}
	}
}

// options resolves a request against the configured defaults.
func (s *BarcodeService) options(req GenerateRequest) (render.Options, error) {
	opts := render.Options{
		DPI:          s.defaults.DPI,
		XDimension:   s.defaults.XDimension,
		BarHeight:    s.defaults.BarHeight,
		QuietZone:    s.defaults.QuietZone,
		LabelFont:    render.FontRegular,
		EncodingFont: render.FontMono,
	}
	if req.DPI > 0 {
		opts.DPI = req.DPI
	}
	if req.XDimension > 0 {
		opts.XDimension = req.XDimension
	}
	if req.TargetWidth > 0 {
		opts.TargetWidth = req.TargetWidth
	}
	if req.BarHeight > 0 {
		opts.BarHeight = req.BarHeight
	}
	if req.QuietZone != nil {
		opts.QuietZone = *req.QuietZone
	}
	pos, err := parseLabelPosition(req.LabelPosition)
	if err != nil {
		return opts, &render.ConfigurationError{Field: "label position", Reason: err.Error()}
	}
	opts.LabelPosition = pos
	opts.LabelText = req.LabelText
	opts.ShowEncoding = req.ShowEncoding
	format, err := parseFormat(req.Format)
	if err != nil {
		return opts, err
	}
	opts.Format = format
	return opts, nil
}

// barcode builds the façade for a request.
func (s *BarcodeService) barcode(req GenerateRequest) (*Barcode, error) {
	kind, err := symbology.ParseKind(req.Symbology)
	if err != nil {
		return nil, &render.ConfigurationError{Field: "symbology", Reason: err.Error()}
	}
	opts, err := s.options(req)
	if err != nil {
		return nil, err
	}
	return NewBarcode(req.Value, kind, opts), nil
}

// Generate renders a barcode image for the request.
func (s *BarcodeService) Generate(req GenerateRequest) (*GenerateResult, error) {
	bc, err := s.barcode(req)
	if err != nil {
		return nil, err
	}
	result, err := bc.Render()
	if err != nil {
		s.log.Error("barcode generation failed", err, map[string]interface{}{
			"symbology": req.Symbology,
		})
		return nil, err
	}
	s.log.Debug("barcode generated", map[string]interface{}{
		"symbology":  req.Symbology,
		"width":      result.Width,
		"height":     result.Height,
		"xdimension": result.XDimension,
	})
	return &GenerateResult{
		Image:                result.Data,
		ContentType:          contentType(bc.Options().Format),
		Width:                result.Width,
		Height:               result.Height,
		XDimension:           result.XDimension,
		XDimensionOverridden: result.XDimensionOverridden,
		Vectors:              result.Vectors,
	}, nil
}

// GenerateZPL renders a barcode as ZPL II text.
func (s *BarcodeService) GenerateZPL(req GenerateRequest) (string, error) {
	bc, err := s.barcode(req)
	if err != nil {
		return "", err
	}
	return bc.ZPL()
}
