package block

import (
	"strings"
	"testing"
)

func TestParseMemTotalMiB(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name: "typical meminfo",
			content: "MemTotal:        8388608 kB\n" +
				"MemFree:         1234567 kB\n" +
				"MemAvailable:    2345678 kB\n",
			want: 8192,
		},
		{
			name:    "truncates to whole MiB",
			content: "MemTotal:        16331252 kB\n",
			want:    15948,
		},
		{
			name:    "MemTotal not first line",
			content: "MemFree: 100 kB\nMemTotal: 2097152 kB\n",
			want:    2048,
		},
		{
			name:    "missing MemTotal",
			content: "MemFree: 100 kB\n",
			wantErr: true,
		},
		{
			name:    "malformed value",
			content: "MemTotal: lots kB\n",
			wantErr: true,
		},
		{
			name:    "empty input",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMemTotalMiB(strings.NewReader(tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMemTotalMiB() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseMemTotalMiB() = %d, want %d", got, tt.want)
			}
		})
	}
}
