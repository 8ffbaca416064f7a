package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-barcode-engine/internal/config"
	"go-barcode-engine/internal/logger"
	"go-barcode-engine/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:   logger.ERROR,
		Service: "test",
	})
	require.NoError(t, err)

	barcodeService := services.NewBarcodeService(config.BarcodeConfig{
		DPI:        96,
		XDimension: 2,
		BarHeight:  60,
		QuietZone:  true,
	}, log)
	labelSheets := services.NewLabelSheetService(barcodeService, config.PDFConfig{
		PaperSize: "A4",
		Columns:   3,
		Rows:      8,
		MarginMM:  10,
	}, log)
	h := NewBarcodeHandler(barcodeService, labelSheets)

	router := gin.New()
	router.GET("/barcode", h.Generate)
	router.GET("/barcode/vectors", h.Vectors)
	router.GET("/barcode/zpl", h.ZPL)
	router.POST("/labelsheet", h.LabelSheet)
	return router
}

func get(router *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateEndpoint(t *testing.T) {
	router := testRouter(t)

	w := get(router, "/barcode?value=HELLO&symbology=code128")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "barcode.png")
}

func TestGenerateEndpointJPEG(t *testing.T) {
	router := testRouter(t)

	w := get(router, "/barcode?value=HELLO&symbology=code128&format=jpeg")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0xFF, 0xD8}))
}

func TestGenerateEndpointValidation(t *testing.T) {
	router := testRouter(t)

	w := get(router, "/barcode?symbology=code128")
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing value")

	w = get(router, "/barcode?value=X&symbology=unknown")
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown symbology")

	w = get(router, "/barcode?value=notdigits&symbology=ean13")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "unencodable value")

	w = get(router, "/barcode?value=X&symbology=code128&format=tiff")
	assert.Equal(t, http.StatusBadRequest, w.Code, "unsupported format")
}

func TestVectorsEndpoint(t *testing.T) {
	router := testRouter(t)

	w := get(router, "/barcode/vectors?value=42&symbology=code128&x_dimension=3")
	require.Equal(t, http.StatusOK, w.Code)

	var resp vectorsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.XDimension)
	assert.NotEmpty(t, resp.Vectors)
	assert.True(t, resp.Vectors[0].Bar, "barcodes start with a bar")
	assert.Equal(t, resp.Vectors[0].Width%3, 0, "widths are multiples of the x-dimension")
}

func TestZPLEndpoint(t *testing.T) {
	router := testRouter(t)

	w := get(router, "/barcode/zpl?value=ZEBRA&symbology=code39")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "^XA")
	assert.Contains(t, w.Body.String(), "^GB")
}

func TestLabelSheetEndpoint(t *testing.T) {
	router := testRouter(t)

	body, err := json.Marshal(map[string]interface{}{
		"values":    []string{"A-001", "A-002", "A-003"},
		"symbology": "code128",
		"title":     "Inventory",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/labelsheet", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestLabelSheetEndpointRequiresValues(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/labelsheet", bytes.NewReader([]byte(`{"symbology":"code128"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
