package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/archtools/groundwork/internal/block"
)

// YAMLFormatter formats devices as YAML.
type YAMLFormatter struct{}

// FormatDevices formats a list of devices as a YAML sequence.
func (f *YAMLFormatter) FormatDevices(devices []block.Device) (string, error) {
	if len(devices) == 0 {
		return "[]\n", nil
	}

	data, err := yaml.Marshal(devices)
	if err != nil {
		return "", fmt.Errorf("failed to marshal devices to YAML: %w", err)
	}

	return string(data), nil
}
