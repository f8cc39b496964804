package guard_test

import (
	"errors"
	"testing"

	"carrierlink/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("test object not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample shows the pattern used by commands and value objects.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Fee struct {
		minorUnits int64
		guard      guard.ConstructorGuard
	}

	errFeeNotConstructed := errors.New("Fee must be created via NewFee")

	newFee := func(minorUnits int64) (Fee, error) {
		if minorUnits <= 0 {
			return Fee{}, errors.New("fee must be positive")
		}
		return Fee{minorUnits: minorUnits, guard: guard.NewConstructorGuard()}, nil
	}

	validateFee := func(f Fee) error {
		return f.guard.Validate(errFeeNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		fee, err := newFee(30000)

		require.NoError(t, err)
		require.NoError(t, validateFee(fee))
		assert.Equal(t, int64(30000), fee.minorUnits)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var fee Fee

		assert.Equal(t, errFeeNotConstructed, validateFee(fee))
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		fee, err := newFee(0)

		require.Error(t, err)
		assert.Equal(t, errFeeNotConstructed, validateFee(fee))
	})
}
