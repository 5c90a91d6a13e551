package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/stordash/internal/config"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/ui"
)

func TestLoadComparison(t *testing.T) {
	c, err := loadComparison(context.Background(), config.DefaultConfig(), []string{"1", "6"})
	require.NoError(t, err)
	require.Len(t, c.Devices, 2)

	assert.Equal(t, 1, c.Devices[0].Record.ID, "argument order kept")
	assert.Equal(t, 6, c.Devices[1].Record.ID)
	assert.Equal(t, "BLR-CZ234402KF", c.Fastest)
	assert.Equal(t, "BLR-CZ234407NQ", c.BestValue)
	assert.Equal(t, 88.5, c.AvgScore)
}

func TestLoadComparison_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"not a number", []string{"1", "abc"}},
		{"zero id", []string{"0", "1"}},
		{"unknown device", []string{"1", "999"}},
		{"single device", []string{"1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadComparison(context.Background(), config.DefaultConfig(), tt.args)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestRenderComparison(t *testing.T) {
	ui.DisableColors()

	c, err := loadComparison(context.Background(), config.DefaultConfig(), []string{"1", "6"})
	require.NoError(t, err)

	out := renderComparison(c)
	assert.Contains(t, out, "stordash Comparison")
	assert.Contains(t, out, "BLR-CZ234402KF")
	assert.Contains(t, out, "BLR-CZ234407NQ")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "45.7%")
	assert.Contains(t, out, "7 of 8")
	assert.Contains(t, out, "Best value")
	assert.Contains(t, out, "$31500")
}
