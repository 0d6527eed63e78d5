package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ValidFormat reports whether name is a known output format
func ValidFormat(name string) bool {
	return name == FormatTable || name == FormatJSON || name == ""
}

// JSONTo writes data as indented JSON to the given writer
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}

// OutputTo writes data to w in the specified format
func OutputTo(w io.Writer, format string, data interface{}) error {
	switch format {
	case FormatJSON:
		return JSONTo(w, data)
	case FormatTable, "":
		return TableTo(w, data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
