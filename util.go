package nodelayout

import (
	"math"
	"math/bits"
)

// Popcount returns the number of ones in j (nu).
func Popcount(j uint64) uint64 {
	return uint64(bits.OnesCount64(j))
}

// LowestSetBit returns the zero-based position of the least significant one of j (rho).
func LowestSetBit(j uint64) (uint64, error) {
	if j == 0 {
		return 0, domainError("LowestSetBit", j, "rho is undefined at zero")
	}
	return uint64(bits.TrailingZeros64(j)), nil
}

// BitLength returns the number of bits needed to write j in binary (lambda).
func BitLength(j uint64) (uint64, error) {
	if j == 0 {
		return 0, domainError("BitLength", j, "lambda is undefined at zero")
	}
	return uint64(bits.Len64(j)), nil
}

func decompose(x uint64, y uint64) (uint64, uint64) {
	return x / y, x % y
}

// satMul and satAdd clamp at math.MaxUint64 so that offsets of huge indices
// stay ordered instead of wrapping.
func satMul(x, y uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func satAdd(x, y uint64) uint64 {
	sum, carry := bits.Add64(x, y, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
