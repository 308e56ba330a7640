package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_CutoffOffset(t *testing.T) {
	tests := []struct {
		name    string
		cutoff  string
		want    time.Duration
		wantErr bool
	}{
		{"Default", "09:00", 9 * time.Hour, false},
		{"Half hour", "08:30", 8*time.Hour + 30*time.Minute, false},
		{"Midnight", "00:00", 0, false},
		{"Garbage", "morning", 0, true},
		{"Empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Config{LateCutoff: tt.cutoff}.CutoffOffset()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
