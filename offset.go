package nodelayout

import "math"

// FixedOffsetBits returns the first bit of entry j when every entry takes a full word.
func FixedOffsetBits(j, wordBits uint64) uint64 {
	return satMul(wordBits, j)
}

// BitPrefixBits returns the number of bits taken by entries before j under bit packing,
// where entry i (1-based) is entryWidthBits+rho(i) bits wide. The sum has the closed
// form j*(entryWidthBits+1) - nu(j).
func BitPrefixBits(j, entryWidthBits uint64) uint64 {
	prod := satMul(j, entryWidthBits+1)
	if prod == math.MaxUint64 {
		return prod
	}
	return prod - Popcount(j)
}

// AlignedEndingBits returns j*(entryWidthBits+1) + wordBits - 1, the last bit a
// word-aligned read of entry j may touch. Clamped at zero when wordBits is zero.
func AlignedEndingBits(j, entryWidthBits, wordBits uint64) uint64 {
	end := satAdd(satMul(j, entryWidthBits+1), wordBits)
	if end == 0 || end == math.MaxUint64 {
		return end
	}
	return end - 1
}

// StartingBitOfNext returns BitPrefixBits(j-1) + wordBits + 1. j must be positive.
func StartingBitOfNext(j, entryWidthBits, wordBits uint64) (uint64, error) {
	if j == 0 {
		return 0, domainError("StartingBitOfNext", j, "no entry precedes zero")
	}
	return satAdd(satAdd(BitPrefixBits(j-1, entryWidthBits), wordBits), 1), nil
}

// BitPackedOffsetBits is the offset used by the bit strategy when searching for the
// largest index that fits a region. It is the aligned ending of entry j.
func BitPackedOffsetBits(j, entryWidthBits, wordBits uint64) uint64 {
	return AlignedEndingBits(j, entryWidthBits, wordBits)
}

// ByteOffsetBits returns the bit offset of entry j under byte packing.
//
// Entries cost smallBytes each; every 2^medium-th entry costs one more byte and every
// 2^large-th entry a further multiplier bytes, which keeps wider upper nodes byte
// aligned. multiplier is -1 for entries wider than 56 bits.
func ByteOffsetBits(j, entryWidthBits uint64) uint64 {
	smallBytes := ((entryWidthBits - 1) >> 3) + 1
	nextByteBits := ((entryWidthBits - 1) | (byteBits - 1)) + 1
	medium := nextByteBits - entryWidthBits + 1
	large := medium + byteBits
	multiplier := int64(byteBits) - int64(smallBytes) - 1

	value := satAdd(satMul(j, smallBytes), j>>medium)
	switch {
	case multiplier >= 0:
		value = satAdd(value, satMul(j>>large, uint64(multiplier)))
	case value != math.MaxUint64:
		value -= (j >> large) * uint64(-multiplier)
	}
	return satMul(value, byteBits)
}

// EntryBitLength returns entryWidthBits + rho(j), the width of the node at index j
// in a bit-packed tree. j must be positive.
func EntryBitLength(j, entryWidthBits uint64) (uint64, error) {
	rho, err := LowestSetBit(j)
	if err != nil {
		return 0, domainError("EntryBitLength", j, "bit length is undefined at zero")
	}
	return entryWidthBits + rho, nil
}
