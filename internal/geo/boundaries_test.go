package geo_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nkedia/crimeatlas/internal/domain/types"
	"github.com/nkedia/crimeatlas/internal/geo"
	. "github.com/smartystreets/goconvey/convey"
)

const stateBoundaries = `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"ST_NM":"Odisha","code":21},"geometry":{"type":"Polygon","coordinates":[[[84,19],[85,19],[85,20],[84,19]]]}},
{"type":"Feature","properties":{"ST_NM":"Tamil Nadu","code":33},"geometry":{"type":"Polygon","coordinates":[[[78,10],[79,10],[79,11],[78,10]]]}}
]}`

func TestReader_Read(t *testing.T) {
	Convey("Given a boundary file with ST_NM properties", t, func() {
		r := geo.NewReader()

		Convey("When parsing it", func() {
			b, err := r.Read([]byte(stateBoundaries))
			So(err, ShouldBeNil)

			Convey("Then the name property is detected", func() {
				So(b.NameProperty(), ShouldEqual, "ST_NM")
				So(b.Count(), ShouldEqual, 2)
			})

			Convey("And the known-regions set is normalized", func() {
				regions := b.Regions()
				So(regions, ShouldHaveLength, 2)
				// Odisha aliases to the boundary-file spelling keyspace.
				So(regions["orissa"], ShouldEqual, "Odisha")
				So(regions["tamil nadu"], ShouldEqual, "Tamil Nadu")
			})
		})
	})
}

func TestBoundaries_Annotate(t *testing.T) {
	Convey("Given parsed boundaries and figures for one region", t, func() {
		b, err := geo.NewReader().Read([]byte(stateBoundaries))
		So(err, ShouldBeNil)

		figures := map[string]types.RegionFigure{
			"orissa":    {Region: "orissa", Name: "Odisha", Total: 1379},
			"jharkhand": {Region: "jharkhand", Name: "Jharkhand", Total: 212},
		}

		Convey("When annotating", func() {
			fc := b.Annotate(figures)

			Convey("Then every feature carries a metric value", func() {
				So(fc.Features, ShouldHaveLength, 2)
				byKey := map[string]float64{}
				for _, f := range fc.Features {
					key := f.Properties[geo.PropRegionKey].(string)
					byKey[key] = f.Properties[geo.PropMetricValue].(float64)
				}
				So(byKey["orissa"], ShouldEqual, 1379)
				// Region with no records reads as zero, not missing.
				So(byKey["tamil nadu"], ShouldEqual, 0)
			})

			Convey("And original properties survive alongside the join", func() {
				So(fc.Features[0].Properties["code"], ShouldNotBeNil)
				So(fc.Features[0].Properties[geo.PropRegionName], ShouldEqual, "Odisha")
			})
		})

		Convey("When listing unmatched figure keys", func() {
			So(b.Unmatched(figures), ShouldResemble, []string{"jharkhand"})
		})
	})
}

func TestReader_FileCache(t *testing.T) {
	Convey("Given a boundary file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "states.geojson")
		So(os.WriteFile(path, []byte(stateBoundaries), 0o600), ShouldBeNil)
		r := geo.NewReader()

		Convey("When reading it twice", func() {
			first, err := r.ReadFile(path)
			So(err, ShouldBeNil)
			second, err := r.ReadFile(path)
			So(err, ShouldBeNil)

			Convey("Then the second read is served from cache", func() {
				So(second, ShouldEqual, first)
				So(r.CacheLen(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a missing path", t, func() {
		_, err := geo.NewReader().ReadFile(filepath.Join(t.TempDir(), "nope.geojson"))

		Convey("Then the read fails with the unavailable kind", func() {
			So(errors.Is(err, geo.ErrBoundariesUnavailable), ShouldBeTrue)
		})
	})
}

func TestReader_BadInput(t *testing.T) {
	Convey("Given malformed or empty GeoJSON", t, func() {
		r := geo.NewReader()

		Convey("Then garbage fails as unavailable", func() {
			_, err := r.Read([]byte("not geojson"))
			So(errors.Is(err, geo.ErrBoundariesUnavailable), ShouldBeTrue)
		})

		Convey("Then an empty collection is rejected", func() {
			_, err := r.Read([]byte(`{"type":"FeatureCollection","features":[]}`))
			So(errors.Is(err, geo.ErrNoFeatures), ShouldBeTrue)
		})
	})
}
