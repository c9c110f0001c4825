package vmath

import (
	"math"
	"math/bits"
)

// MaxExponent caps cell and tile exponents so 1<<k stays representable
const MaxExponent = 62

// ClosestExponentOfTwo returns the largest k with 2^k <= n
// 8 => 3, 61 => 5 (32 <= 61 < 64), 65 => 6; values below 2 map to 0
func ClosestExponentOfTwo(n float64) uint {
	if !(n >= 2) {
		return 0
	}
	if n >= 1<<MaxExponent {
		return MaxExponent
	}
	return uint(bits.Len64(uint64(n)) - 1)
}

// IsPowerOfTwo reports whether n is an exact positive power of two (1 included)
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// MaxCellCoord bounds the coordinates FloorShift converts; larger magnitudes saturate
const MaxCellCoord = 1 << 52

// FloorShift maps a world coordinate to its cell index for cells of size 2^k
// Floors before shifting so negative coordinates round toward -inf: -0.5 => -1
// Infinite and out of range values clamp to ±MaxCellCoord; v must not be NaN
func FloorShift(v float64, k uint) int {
	return int(Clamp(math.Floor(v), -MaxCellCoord, MaxCellCoord)) >> k
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns 1 for v > 0, otherwise -1
// Zero maps to -1 to match the collision normal convention
func Sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

// IsFinite reports whether v is neither NaN nor infinite
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
