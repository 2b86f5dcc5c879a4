package errs_test

import (
	"errors"
	"testing"

	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("no rows\nin result set")

	tests := []struct {
		name     string
		err      error
		sentinel error
		expected string
	}{
		{
			name:     "order not found",
			err:      errs.NewObjectNotFoundError("orderID", "4f1c"),
			sentinel: errs.ErrObjectNotFound,
			expected: "object not found: 4f1c",
		},
		{
			name:     "payout entry not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("payoutID", "91ab", cause),
			sentinel: errs.ErrObjectNotFound,
			expected: "object not found: param is: payoutID, ID is: 91ab (cause: no rows in result set)",
		},
		{
			name:     "promotion code invalid",
			err:      errs.NewValueIsInvalidError("promotion code"),
			sentinel: errs.ErrValueIsInvalid,
			expected: "value is invalid: promotion code",
		},
		{
			name:     "otp code invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("otp code", errors.New("expected 6 digits")),
			sentinel: errs.ErrValueIsInvalid,
			expected: "value is invalid: otp code (cause: expected 6 digits)",
		},
		{
			name:     "quantity out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100),
			sentinel: errs.ErrValueIsOutOfRange,
			expected: "value is invalid: 0 is quantity, min value is 1, max value is 100",
		},
		{
			name: "discount percent out of range with cause",
			err: errs.NewValueIsOutOfRangeErrorWithCause("discount percent", 120, 0, 100,
				errors.New("percent above 100")),
			sentinel: errs.ErrValueIsOutOfRange,
			expected: "value is invalid: 120 is discount percent, min value is 0, max value is 100 (cause: percent above 100)",
		},
		{
			name:     "items required",
			err:      errs.NewValueIsRequiredError("items"),
			sentinel: errs.ErrValueIsRequired,
			expected: "value is required: items",
		},
		{
			name:     "pickup window required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("pickup window", errors.New("start is zero")),
			sentinel: errs.ErrValueIsRequired,
			expected: "value is required: pickup window (cause: start is zero)",
		},
		{
			name:     "stale order version",
			err:      errs.NewVersionIsInvalidError("order"),
			sentinel: errs.ErrVersionIsInvalid,
			expected: "version is invalid: order",
		},
		{
			name:     "stale order version with cause",
			err:      errs.NewVersionIsInvalidErrorWithCause("order", errors.New("expected 3, stored 4")),
			sentinel: errs.ErrVersionIsInvalid,
			expected: "version is invalid: order (cause: expected 3, stored 4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			assert.NotContains(t, tt.err.Error(), "\n")
		})
	}
}

func TestObjectNotFoundError_Fields(t *testing.T) {
	err := errs.NewObjectNotFoundError("orderID", 456)

	assert.Equal(t, "orderID", err.ParamName)
	assert.Equal(t, 456, err.ID)
	require.NoError(t, err.Cause)
	assert.Equal(t, "object not found: %!s(int=456)", err.Error())
}

func TestValueIsOutOfRangeError_SanitizesValue(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("note", "fragile\nwash cold", 0, 10)

	assert.Contains(t, err.Error(), "fragile wash cold")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		errs.ErrObjectNotFound,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrValueIsRequired,
		errs.ErrVersionIsInvalid,
		errs.ErrTransitionNotAllowed,
		errs.ErrActorNotAuthorized,
		errs.ErrConflict,
		errs.ErrWindowClosed,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
