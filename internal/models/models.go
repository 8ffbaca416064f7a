package models

import (
	"time"
)

// BarcodePreset is a named, stored rendering configuration. A preset fixes
// the symbology and layout options; the value to encode is supplied per
// request (or falls back to DefaultValue).
type BarcodePreset struct {
	PresetID      uint      `json:"presetID" gorm:"primaryKey;column:presetID"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null;column:name"`
	Symbology     string    `json:"symbology" gorm:"not null;column:symbology"`
	DefaultValue  *string   `json:"defaultValue" gorm:"column:default_value"`
	DPI           int       `json:"dpi" gorm:"column:dpi"`
	XDimension    int       `json:"xDimension" gorm:"column:x_dimension"`
	TargetWidth   int       `json:"targetWidth" gorm:"column:target_width"`
	BarHeight     int       `json:"barHeight" gorm:"column:bar_height"`
	QuietZone     *bool     `json:"quietZone" gorm:"column:quiet_zone"`
	LabelPosition string    `json:"labelPosition" gorm:"column:label_position"`
	ShowEncoding  bool      `json:"showEncoding" gorm:"column:show_encoding"`
	Format        string    `json:"format" gorm:"column:format"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (BarcodePreset) TableName() string {
	return "barcode_presets"
}
