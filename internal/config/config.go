package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Barcode  BarcodeConfig  `json:"barcode"`
	PDF      PDFConfig      `json:"pdf"`
	Logging  LoggingConfig  `json:"logging"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseConfig configures the optional preset store. Presets are disabled
// entirely when Enabled is false; the rendering endpoints work without a
// database.
type DatabaseConfig struct {
	Enabled         bool          `json:"enabled"`
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Database        string        `json:"database"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
}

// BarcodeConfig holds the rendering defaults applied when a request leaves
// a field unset.
type BarcodeConfig struct {
	DPI        int  `json:"dpi"`
	XDimension int  `json:"x_dimension"`
	BarHeight  int  `json:"bar_height"`
	QuietZone  bool `json:"quiet_zone"`
}

// PDFConfig shapes the label-sheet export.
type PDFConfig struct {
	PaperSize string  `json:"paper_size"`
	Columns   int     `json:"columns"`
	Rows      int     `json:"rows"`
	MarginMM  float64 `json:"margin_mm"`
}

type LoggingConfig struct {
	Level        string `json:"level"`
	File         string `json:"file"`
	EnableCaller bool   `json:"enable_caller"`
}

// LoadConfig builds the configuration from defaults, then the JSON file at
// path if it exists, then environment variables, in increasing priority.
func LoadConfig(path string) (*Config, error) {
	config := getDefaultConfig()

	loadFromEnvironment(config)

	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, err
		}
		// Override again with environment variables to give them priority
		loadFromEnvironment(config)
	}

	return config, nil
}

func (c *Config) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(c)
}

func getDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Enabled:         false,
			Host:            "localhost",
			Port:            3306,
			Database:        "barcodes",
			Username:        "root",
			Password:        "",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
		},
		Barcode: BarcodeConfig{
			DPI:        96,
			XDimension: 2,
			BarHeight:  150,
			QuietZone:  true,
		},
		PDF: PDFConfig{
			PaperSize: "A4",
			Columns:   3,
			Rows:      8,
			MarginMM:  10,
		},
		Logging: LoggingConfig{
			Level:        "info",
			File:         "stdout",
			EnableCaller: false,
		},
	}
}

// loadFromEnvironment loads configuration from environment variables
func loadFromEnvironment(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if enabled := os.Getenv("DB_ENABLED"); enabled != "" {
		config.Database.Enabled = enabled == "true"
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Database.Port = p
		}
	}
	if database := os.Getenv("DB_NAME"); database != "" {
		config.Database.Database = database
	}
	if username := os.Getenv("DB_USERNAME"); username != "" {
		config.Database.Username = username
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}

	if dpi := os.Getenv("BARCODE_DPI"); dpi != "" {
		if d, err := strconv.Atoi(dpi); err == nil {
			config.Barcode.DPI = d
		}
	}
	if x := os.Getenv("BARCODE_X_DIMENSION"); x != "" {
		if v, err := strconv.Atoi(x); err == nil {
			config.Barcode.XDimension = v
		}
	}
	if h := os.Getenv("BARCODE_BAR_HEIGHT"); h != "" {
		if v, err := strconv.Atoi(h); err == nil {
			config.Barcode.BarHeight = v
		}
	}
	if quiet := os.Getenv("BARCODE_QUIET_ZONE"); quiet != "" {
		config.Barcode.QuietZone = quiet == "true"
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if file := os.Getenv("LOG_FILE"); file != "" {
		config.Logging.File = file
	}
}
