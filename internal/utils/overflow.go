package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow checks if multiplying two uint64 values would overflow.
// Returns an error if overflow would occur.
func CheckMultiplyOverflow(a, b uint64) error {
	if a == 0 || b == 0 {
		return nil // No overflow when either is zero
	}

	if a > math.MaxUint64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds uint64 max", a, b)
	}

	return nil
}

// SafeMultiply multiplies two uint64 values and returns the result if no overflow occurs.
// Returns 0 and an error if overflow would occur.
func SafeMultiply(a, b uint64) (uint64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// SampleCount safely computes width*height*frames for an allocation of
// 16-bit samples. The result must also fit the platform int so it can be
// used as a slice length.
func SampleCount(width, height, frames uint64) (uint64, error) {
	perFrame, err := SafeMultiply(width, height)
	if err != nil {
		return 0, fmt.Errorf("frame area: %w", err)
	}

	total, err := SafeMultiply(perFrame, frames)
	if err != nil {
		return 0, fmt.Errorf("stack size: %w", err)
	}

	// Two bytes per sample must still be addressable.
	if err := CheckMultiplyOverflow(total, 2); err != nil {
		return 0, fmt.Errorf("stack bytes: %w", err)
	}
	if total > math.MaxInt {
		return 0, fmt.Errorf("stack of %d samples exceeds slice limit", total)
	}

	return total, nil
}
