package output

import (
	"encoding/json"
	"fmt"

	"github.com/archtools/groundwork/internal/block"
)

// JSONFormatter formats devices as JSON.
type JSONFormatter struct{}

// FormatDevices formats a list of devices as a JSON array.
func (f *JSONFormatter) FormatDevices(devices []block.Device) (string, error) {
	if len(devices) == 0 {
		return "[]\n", nil
	}

	data, err := json.MarshalIndent(devices, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal devices to JSON: %w", err)
	}

	return string(data) + "\n", nil
}
