package render

import "fmt"

// ConfigurationError reports rendering configuration that can never produce
// a valid barcode image, such as a non-positive DPI or x-dimension.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// UnsupportedFormatError reports an image format the drawing surface cannot
// encode.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported image format %q", string(e.Format))
}
