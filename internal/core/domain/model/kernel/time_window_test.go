package kernel_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 3, hour, minute, 0, 0, time.UTC)
}

func mustWindow(t *testing.T, start, end time.Time) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestNewTimeWindow(t *testing.T) {
	testCases := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{name: "valid", start: at(9, 0), end: at(11, 0)},
		{name: "end equals start", start: at(9, 0), end: at(9, 0), wantErr: errs.ErrValueIsInvalid},
		{name: "end before start", start: at(11, 0), end: at(9, 0), wantErr: errs.ErrValueIsInvalid},
		{name: "zero start", end: at(9, 0), wantErr: errs.ErrValueIsRequired},
		{name: "zero end", start: at(9, 0), wantErr: errs.ErrValueIsRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := kernel.NewTimeWindow(tc.start, tc.end)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, w.Validate())
			assert.Equal(t, 2*time.Hour, w.Duration())
		})
	}
}

func TestNewTimeWindow_NormalizesToUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	w := mustWindow(t, time.Date(2025, 3, 3, 14, 30, 0, 0, ist), time.Date(2025, 3, 3, 16, 30, 0, 0, ist))

	assert.Equal(t, time.UTC, w.Start().Location())
	assert.Equal(t, at(9, 0), w.Start())
}

func TestTimeWindow_Relations(t *testing.T) {
	morning := mustWindow(t, at(9, 0), at(12, 0))

	t.Run("contains is half open", func(t *testing.T) {
		assert.True(t, morning.Contains(at(9, 0)))
		assert.True(t, morning.Contains(at(11, 59)))
		assert.False(t, morning.Contains(at(12, 0)))
	})

	t.Run("overlaps", func(t *testing.T) {
		assert.True(t, morning.Overlaps(mustWindow(t, at(11, 0), at(13, 0))))
		assert.False(t, morning.Overlaps(mustWindow(t, at(12, 0), at(13, 0))))
	})

	t.Run("covers", func(t *testing.T) {
		assert.True(t, morning.Covers(mustWindow(t, at(10, 0), at(12, 0))))
		assert.False(t, morning.Covers(mustWindow(t, at(10, 0), at(12, 30))))
	})

	t.Run("shift", func(t *testing.T) {
		shifted := morning.Shift(48 * time.Hour)

		assert.Equal(t, at(9, 0).Add(48*time.Hour), shifted.Start())
		assert.Equal(t, morning.Duration(), shifted.Duration())
		require.NoError(t, shifted.Validate())
	})
}

func TestTimeWindow_ZeroValue(t *testing.T) {
	var w kernel.TimeWindow

	assert.Equal(t, kernel.ErrTimeWindowIsNotConstructed, w.Validate())
}
