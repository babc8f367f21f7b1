// Package nodelayout computes where the nodes of a compressed Fenwick tree
// (or any level-ordered auxiliary index of a rank/select dictionary) start in memory.
//
// Three packing strategies are supported:
//
//   - Fixed: every node takes a full machine word.
//   - Byte: nodes are byte aligned and their byte cost grows in bands of the index.
//   - Bit: node j is S+rho(j) bits wide and nodes are packed back to back.
//
// For each strategy the package gives the offset of node j in closed form, and the
// inverse query: the largest j whose node still starts inside a memory region such as
// a cache level or a page. All functions are pure and safe for concurrent use.
//
// [1] "Compact Fenwick trees for dynamic ranking and selection", Marchini and Vigna, 2019
package nodelayout

import (
	"fmt"
	"math"
	"strings"

	"github.com/ugorji/go/codec"
)

// Strategy selects how nodes are packed.
type Strategy uint8

const (
	Fixed Strategy = iota
	Byte
	Bit
)

// Strategies lists every strategy in report order.
var Strategies = []Strategy{Fixed, Byte, Bit}

func (s Strategy) String() string {
	switch s {
	case Fixed:
		return "fixed"
	case Byte:
		return "byte"
	case Bit:
		return "bit"
	}
	return "unknown"
}

// ParseStrategy maps "fixed", "byte" or "bit" (any case) to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if strings.EqualFold(strings.TrimSpace(name), s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrDomain, name)
}

// Params holds the word width and the per-node small field width S.
type Params struct {
	WordBits       uint64 `codec:"wordBits" json:"wordBits"`
	EntryWidthBits uint64 `codec:"entryWidthBits" json:"entryWidthBits"`
}

// DefaultParams returns 64-bit words and S = 7.
func DefaultParams() Params {
	return Params{WordBits: defaultWordBits, EntryWidthBits: defaultEntryWidthBits}
}

// Validate checks that the parameters describe a layout whose offsets grow with j.
func (p Params) Validate() error {
	if p.WordBits == 0 {
		return domainError("Params.WordBits", p.WordBits, "word width must be positive")
	}
	if p.EntryWidthBits == 0 || p.EntryWidthBits > maxEntryWidthBits {
		return domainError("Params.EntryWidthBits", p.EntryWidthBits, "entry width must be in [1, 64]")
	}
	return nil
}

// Layout is a strategy bound to its parameters.
type Layout struct {
	strategy Strategy
	params   Params
}

// New returns a Layout, or a DomainError when the strategy or parameters are invalid.
func New(strategy Strategy, params Params) (*Layout, error) {
	l := &Layout{strategy: strategy, params: params}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l Layout) validate() error {
	if l.strategy > Bit {
		return domainError("Layout.Strategy", uint64(l.strategy), "unknown strategy")
	}
	return l.params.Validate()
}

// Strategy returns the packing strategy.
func (l Layout) Strategy() Strategy {
	return l.strategy
}

// Params returns the layout parameters.
func (l Layout) Params() Params {
	return l.params
}

// Offset returns the bit offset of node j.
func (l Layout) Offset(j uint64) uint64 {
	switch l.strategy {
	case Byte:
		return ByteOffsetBits(j, l.params.EntryWidthBits)
	case Bit:
		return BitPackedOffsetBits(j, l.params.EntryWidthBits, l.params.WordBits)
	}
	return FixedOffsetBits(j, l.params.WordBits)
}

// Position splits Offset(j) into a byte index and the shift inside that byte.
func (l Layout) Position(j uint64) (uint64, uint64) {
	return decompose(l.Offset(j), byteBits)
}

// MaxIndexFitting returns the largest j with Offset(j) < regionSizeBits,
// or -1 when not even node 0 fits.
//
// Offsets are non-decreasing and grow at least by one bit per node, so the
// answer is found by doubling an upper bound and bisecting.
func (l Layout) MaxIndexFitting(regionSizeBits uint64) int64 {
	if l.Offset(0) >= regionSizeBits {
		return -1
	}
	lo, hi := uint64(0), uint64(1)
	for l.Offset(hi) < regionSizeBits {
		lo = hi
		if hi == math.MaxInt64 {
			return math.MaxInt64
		}
		if hi > math.MaxInt64/2 {
			hi = math.MaxInt64
		} else {
			hi <<= 1
		}
	}
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if l.Offset(mid) < regionSizeBits {
			lo = mid
		} else {
			hi = mid
		}
	}
	return int64(lo)
}

// MaxIndexFittingScan is MaxIndexFitting computed by walking j upward from zero.
// It takes time linear in the answer.
func (l Layout) MaxIndexFittingScan(regionSizeBits uint64) int64 {
	j := uint64(0)
	for j < math.MaxInt64 && l.Offset(j) < regionSizeBits {
		j++
	}
	return int64(j) - 1
}

// MaxIndexFitting is a shorthand for New(strategy, params) followed by MaxIndexFitting.
func MaxIndexFitting(strategy Strategy, regionSizeBits uint64, params Params) (int64, error) {
	l, err := New(strategy, params)
	if err != nil {
		return 0, err
	}
	return l.MaxIndexFitting(regionSizeBits), nil
}

// MarshalBinary encodes the Layout into a binary form and returns the result.
func (l Layout) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = enc.Encode(uint8(l.strategy))
	if err != nil {
		return
	}
	err = enc.Encode(l.params.WordBits)
	if err != nil {
		return
	}
	err = enc.Encode(l.params.EntryWidthBits)
	return
}

// UnmarshalBinary decodes the Layout from a binary form generated by MarshalBinary
func (l *Layout) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	var strategy uint8
	var params Params
	dec := codec.NewDecoderBytes(in, &bh)
	err = dec.Decode(&strategy)
	if err != nil {
		return
	}
	err = dec.Decode(&params.WordBits)
	if err != nil {
		return
	}
	err = dec.Decode(&params.EntryWidthBits)
	if err != nil {
		return
	}
	decoded := Layout{strategy: Strategy(strategy), params: params}
	if err = decoded.validate(); err != nil {
		return
	}
	*l = decoded
	return nil
}
