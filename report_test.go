package nodelayout

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildReport(t *testing.T) {
	Convey("Given the standard regions", t, func() {
		r, err := BuildReport(DefaultParams(), nil)
		So(err, ShouldBeNil)
		So(r.Regions, ShouldResemble, StandardRegions())
		So(len(r.Entries), ShouldEqual, 15)

		Convey("each strategy reports its maximum index and height", func() {
			e, ok := r.Lookup(Bit, "L1")
			So(ok, ShouldBeTrue)
			So(e.MaxIndex, ShouldEqual, 32760)
			So(e.Height, ShouldEqual, 15)
			So(e.RegionBits, ShouldEqual, 262144)

			e, ok = r.Lookup(Byte, "page4k")
			So(ok, ShouldBeTrue)
			So(e.MaxIndex, ShouldEqual, 3262)
			So(e.Height, ShouldEqual, 12)

			e, ok = r.Lookup(Fixed, "L3")
			So(ok, ShouldBeTrue)
			So(e.MaxIndex, ShouldEqual, 1048575)
			So(e.Height, ShouldEqual, 20)

			_, ok = r.Lookup(Fixed, "L4")
			So(ok, ShouldBeFalse)
		})

		Convey("entries are ordered by strategy then region", func() {
			So(r.Entries[0].Strategy, ShouldEqual, Fixed)
			So(r.Entries[0].Region, ShouldEqual, "L1")
			So(r.Entries[14].Strategy, ShouldEqual, Bit)
			So(r.Entries[14].Region, ShouldEqual, "page2M")
		})

		Convey("the report survives msgpack", func() {
			out, err := r.MarshalBinary()
			So(err, ShouldBeNil)
			var got Report
			So(got.UnmarshalBinary(out), ShouldBeNil)
			So(got, ShouldResemble, *r)
		})

		Convey("the report encodes as JSON", func() {
			var buf bytes.Buffer
			So(r.EncodeJSON(&buf), ShouldBeNil)
			var decoded struct {
				Params  Params
				Entries []struct {
					Region   string
					MaxIndex int64
				}
			}
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded.Params, ShouldResemble, DefaultParams())
			So(decoded.Entries[0].Region, ShouldEqual, "L1")
			So(decoded.Entries[0].MaxIndex, ShouldEqual, 4095)
		})
	})

	Convey("Regions too small for node 0 have no height", t, func() {
		r, err := BuildReport(DefaultParams(), []Region{{Name: "tiny", SizeBits: 8}, RegionBytes("word", 8)}, Bit, Fixed)
		So(err, ShouldBeNil)
		So(len(r.Entries), ShouldEqual, 4)

		e, _ := r.Lookup(Bit, "tiny")
		So(e.MaxIndex, ShouldEqual, -1)
		So(e.Height, ShouldEqual, 0)
		e, _ = r.Lookup(Fixed, "word")
		So(e.MaxIndex, ShouldEqual, 0)
		So(e.Height, ShouldEqual, 0)
		e, _ = r.Lookup(Bit, "word")
		So(e.MaxIndex, ShouldEqual, 0)
	})

	Convey("Invalid parameters are rejected", t, func() {
		_, err := BuildReport(Params{WordBits: 64}, nil)
		So(errors.Is(err, ErrDomain), ShouldBeTrue)
	})
}
