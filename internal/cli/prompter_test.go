package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptFilters(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRegion string
		wantMin    string
		wantMax    string
		wantErr    bool
	}{
		{
			name:  "declined",
			input: "n\n",
		},
		{
			name:  "declined with anything but y",
			input: "maybe\n",
		},
		{
			name:       "full filter set",
			input:      "y\nNorth\n100\n500.50\n",
			wantRegion: "North",
			wantMin:    "100",
			wantMax:    "500.50",
		},
		{
			name:  "accepted but every filter skipped",
			input: "y\n\n\n\n",
		},
		{
			name:    "uppercase Y accepted, min only",
			input:   "Y\n\n250\n\n",
			wantMin: "250",
		},
		{
			name:    "malformed amount aborts",
			input:   "y\nNorth\nabc\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewFilterPrompter(strings.NewReader(tt.input), &out)

			opts, err := p.PromptFilters(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantRegion, opts.Region)

			if tt.wantMin == "" {
				assert.Nil(t, opts.MinAmount)
			} else {
				require.NotNil(t, opts.MinAmount)
				assert.True(t, decimal.RequireFromString(tt.wantMin).Equal(*opts.MinAmount))
			}

			if tt.wantMax == "" {
				assert.Nil(t, opts.MaxAmount)
			} else {
				require.NotNil(t, opts.MaxAmount)
				assert.True(t, decimal.RequireFromString(tt.wantMax).Equal(*opts.MaxAmount))
			}

			assert.Contains(t, out.String(), "Do you want to filter data?")
		})
	}
}

func TestShowFilterOptions(t *testing.T) {
	var out bytes.Buffer
	p := NewFilterPrompter(strings.NewReader(""), &out)

	p.ShowFilterOptions(
		[]string{"East", "North", "South"},
		decimal.RequireFromString("46.50"),
		decimal.RequireFromString("1200.50"),
		"₹")

	rendered := out.String()
	assert.Contains(t, rendered, "Filter Options Available")
	assert.Contains(t, rendered, "Regions: East, North, South")
	// Amount bounds are truncated to whole units.
	assert.Contains(t, rendered, "₹46 - ₹1200")
}
