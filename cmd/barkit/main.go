package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-barcode-engine/internal/config"
	"go-barcode-engine/internal/handlers"
	"go-barcode-engine/internal/logger"
	"go-barcode-engine/internal/repository"
	"go-barcode-engine/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "barkit",
		Short: "Barcode rendering engine and HTTP service",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to JSON config file")

	root.AddCommand(newServeCommand())
	root.AddCommand(newGenerateCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logger.StructuredLogger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:        logger.ParseLevel(cfg.Logging.Level),
		Service:      "barkit",
		Version:      version,
		OutputPath:   cfg.Logging.File,
		EnableCaller: cfg.Logging.EnableCaller,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

const version = "1.0.0"

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the barcode HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Close()

			barcodeService := services.NewBarcodeService(cfg.Barcode, log)
			labelSheets := services.NewLabelSheetService(barcodeService, cfg.PDF, log)
			barcodeHandler := handlers.NewBarcodeHandler(barcodeService, labelSheets)

			var presetHandler *handlers.PresetHandler
			if cfg.Database.Enabled {
				db, err := repository.NewDatabase(&cfg.Database)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer db.Close()
				presetHandler = handlers.NewPresetHandler(repository.NewPresetRepository(db), barcodeService)
			}

			gin.SetMode(gin.ReleaseMode)
			router := gin.New()
			router.Use(gin.Recovery())
			router.Use(log.LoggingMiddleware())

			router.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{"status": "ok", "version": version})
			})

			api := router.Group("/api/v1")
			{
				api.GET("/barcode", barcodeHandler.Generate)
				api.GET("/barcode/vectors", barcodeHandler.Vectors)
				api.GET("/barcode/zpl", barcodeHandler.ZPL)
				api.POST("/labelsheet", barcodeHandler.LabelSheet)

				if presetHandler != nil {
					api.GET("/presets", presetHandler.List)
					api.POST("/presets", presetHandler.Create)
					api.GET("/presets/:id", presetHandler.Get)
					api.PUT("/presets/:id", presetHandler.Update)
					api.DELETE("/presets/:id", presetHandler.Delete)
					api.GET("/presets/by-name/:name/render", presetHandler.Render)
				}
			}

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			log.Info("starting HTTP server", map[string]interface{}{
				"address": addr,
				"presets": presetHandler != nil,
			})
			return router.Run(addr)
		},
	}
}

func newGenerateCommand() *cobra.Command {
	var (
		symbologyName string
		output        string
		format        string
		dpi           int
		xDimension    int
		targetWidth   int
		barHeight     int
		labelPos      string
		labelText     string
		showEncoding  bool
		noQuietZone   bool
	)

	cmd := &cobra.Command{
		Use:   "generate <value>",
		Short: "Render a barcode image to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Close()

			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			}

			req := services.GenerateRequest{
				Value:         args[0],
				Symbology:     symbologyName,
				DPI:           dpi,
				XDimension:    xDimension,
				TargetWidth:   targetWidth,
				BarHeight:     barHeight,
				LabelPosition: labelPos,
				LabelText:     labelText,
				ShowEncoding:  showEncoding,
				Format:        format,
			}
			if noQuietZone {
				quiet := false
				req.QuietZone = &quiet
			}

			service := services.NewBarcodeService(cfg.Barcode, log)
			result, err := service.Generate(req)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, result.Image, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("wrote %s (%dx%d px, x-dimension %d)\n", output, result.Width, result.Height, result.XDimension)
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbologyName, "symbology", "s", "code128", "symbology (code128, gs1-128, code39, itf, ean13, ean8, upca, ...)")
	cmd.Flags().StringVarP(&output, "output", "o", "barcode.png", "output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "image format (png, jpeg, bmp); inferred from output when empty")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "render DPI (0 uses the configured default)")
	cmd.Flags().IntVarP(&xDimension, "x-dimension", "x", 0, "narrow module width in pixels")
	cmd.Flags().IntVarP(&targetWidth, "width", "w", 0, "target width in pixels; grows the x-dimension to fit")
	cmd.Flags().IntVar(&barHeight, "height", 0, "bar height in pixels")
	cmd.Flags().StringVarP(&labelPos, "label", "l", "", "label position: below, above, embedded, hidden")
	cmd.Flags().StringVar(&labelText, "label-text", "", "override the label text")
	cmd.Flags().BoolVar(&showEncoding, "show-encoding", false, "draw the encoding strip under the bars")
	cmd.Flags().BoolVar(&noQuietZone, "no-quiet-zone", false, "disable the quiet zone")

	return cmd
}
