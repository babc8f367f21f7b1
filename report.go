package nodelayout

import (
	"io"

	"github.com/ugorji/go/codec"
)

// Region is a named memory region, such as a cache level or a page.
type Region struct {
	Name     string `codec:"name" json:"name"`
	SizeBits uint64 `codec:"sizeBits" json:"sizeBits"`
}

// RegionBytes returns a Region sized in bytes.
func RegionBytes(name string, bytes uint64) Region {
	return Region{Name: name, SizeBits: satMul(bytes, byteBits)}
}

// StandardRegions returns the usual cache levels and page sizes of an x86-64 machine.
func StandardRegions() []Region {
	return []Region{
		RegionBytes("L1", l1Bytes),
		RegionBytes("L2", l2Bytes),
		RegionBytes("L3", l3Bytes),
		RegionBytes("page4k", page4kBytes),
		RegionBytes("page2M", page2MBytes),
	}
}

// Entry is the answer for one strategy and one region.
//
// Height is the bit length of MaxIndex, i.e. the number of tree levels whose
// nodes up to MaxIndex fit in the region. It is zero when MaxIndex < 1.
type Entry struct {
	Strategy   Strategy `codec:"strategy" json:"strategy"`
	Region     string   `codec:"region" json:"region"`
	RegionBits uint64   `codec:"regionBits" json:"regionBits"`
	MaxIndex   int64    `codec:"maxIndex" json:"maxIndex"`
	Height     uint64   `codec:"height" json:"height"`
}

// Report holds MaxIndexFitting for a set of strategies and regions.
type Report struct {
	Params  Params   `codec:"params" json:"params"`
	Regions []Region `codec:"regions" json:"regions"`
	Entries []Entry  `codec:"entries" json:"entries"`
}

// reportWire has Report's fields without its marshaling methods, so the codec
// encodes the struct instead of calling back into MarshalBinary.
type reportWire Report

// BuildReport evaluates every strategy against every region. With no regions the
// standard regions are used, with no strategies all of them.
func BuildReport(params Params, regions []Region, strategies ...Strategy) (*Report, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		regions = StandardRegions()
	}
	if len(strategies) == 0 {
		strategies = Strategies
	}
	r := &Report{
		Params:  params,
		Regions: append([]Region(nil), regions...),
		Entries: make([]Entry, 0, len(regions)*len(strategies)),
	}
	for _, s := range strategies {
		l, err := New(s, params)
		if err != nil {
			return nil, err
		}
		for _, region := range regions {
			maxIndex := l.MaxIndexFitting(region.SizeBits)
			var height uint64
			if maxIndex > 0 {
				height, _ = BitLength(uint64(maxIndex))
			}
			r.Entries = append(r.Entries, Entry{
				Strategy:   s,
				Region:     region.Name,
				RegionBits: region.SizeBits,
				MaxIndex:   maxIndex,
				Height:     height,
			})
		}
	}
	return r, nil
}

// Lookup returns the entry for a strategy and a region name.
func (r Report) Lookup(strategy Strategy, region string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Strategy == strategy && e.Region == region {
			return e, true
		}
	}
	return Entry{}, false
}

// EncodeJSON writes the report as indented JSON.
func (r Report) EncodeJSON(w io.Writer) error {
	jh := codec.JsonHandle{Indent: 2}
	return codec.NewEncoder(w, &jh).Encode(reportWire(r))
}

// MarshalBinary encodes the Report with msgpack.
func (r Report) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	err = codec.NewEncoderBytes(&out, &bh).Encode(reportWire(r))
	return
}

// UnmarshalBinary decodes a Report generated by MarshalBinary.
func (r *Report) UnmarshalBinary(in []byte) error {
	var bh codec.MsgpackHandle
	var decoded reportWire
	if err := codec.NewDecoderBytes(in, &bh).Decode(&decoded); err != nil {
		return err
	}
	*r = Report(decoded)
	return nil
}
