package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nkedia/crimeatlas/internal/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

const ncrbSample = `Sl. No.,State/UT,Crime Head,2022,percentage
1,Maharashtra,Murder,2295,12.5
2,Maharashtra,Theft,58curry,
3,Odisha,Murder,1379,7.1
4,,Murder,500,2.0
5,Tamil Nadu,Theft,,
6,Uttar Pradesh,Murder,3491,18.9
`

func TestLoader_Load(t *testing.T) {
	Convey("Given an NCRB-style CSV", t, func() {
		l := dataset.NewLoader()

		Convey("When loading it", func() {
			ds, err := l.Load(strings.NewReader(ncrbSample))
			So(err, ShouldBeNil)

			Convey("Then bad rows are excluded and counted", func() {
				// row 2: unparseable value, row 4: missing region,
				// row 5: missing value
				So(ds.SkippedRows, ShouldEqual, 3)
				So(ds.Records, ShouldHaveLength, 3)
			})

			Convey("And the detected schema is reported", func() {
				So(ds.RegionCol, ShouldEqual, "State/UT")
				So(ds.ValueCol, ShouldEqual, "2022")
				So(ds.CategoryCol, ShouldEqual, "Crime Head")
			})

			Convey("And region keys are normalized while raw names survive", func() {
				So(ds.Records[1].Region, ShouldEqual, "orissa")
				So(ds.Records[1].RegionRaw, ShouldEqual, "Odisha")
			})

			Convey("And values parse as numbers", func() {
				So(ds.Records[0].Value, ShouldEqual, 2295)
				So(ds.Records[0].Category, ShouldEqual, "Murder")
			})
		})
	})
}

func TestLoader_SingleBadRow(t *testing.T) {
	Convey("Given a CSV with exactly one row missing its value", t, func() {
		src := "State/UT,2022\nKerala,881\nGoa,\n"

		Convey("When loading it", func() {
			ds, err := dataset.NewLoader().Load(strings.NewReader(src))
			So(err, ShouldBeNil)

			Convey("Then the skip count is exactly one", func() {
				So(ds.SkippedRows, ShouldEqual, 1)
				So(ds.Records, ShouldHaveLength, 1)
				So(ds.Records[0].Region, ShouldEqual, "kerala")
			})
		})
	})
}

func TestLoader_ColumnOverrides(t *testing.T) {
	Convey("Given a CSV with several numeric columns", t, func() {
		src := "State/UT,2021,2022\nPunjab,700,724\nHaryana,1020,990\n"

		Convey("When no value column is pinned", func() {
			ds, err := dataset.NewLoader().Load(strings.NewReader(src))
			So(err, ShouldBeNil)

			Convey("Then the first numeric column wins", func() {
				So(ds.ValueCol, ShouldEqual, "2021")
				So(ds.Records[0].Value, ShouldEqual, 700)
			})
		})

		Convey("When the value column is pinned to 2022", func() {
			l := dataset.NewLoader(dataset.WithValueColumn("2022"))
			ds, err := l.Load(strings.NewReader(src))
			So(err, ShouldBeNil)

			Convey("Then that column is read instead", func() {
				So(ds.ValueCol, ShouldEqual, "2022")
				So(ds.Records[0].Value, ShouldEqual, 724)
			})
		})

		Convey("When a pinned column does not exist", func() {
			l := dataset.NewLoader(dataset.WithValueColumn("2019"))
			_, err := l.Load(strings.NewReader(src))

			Convey("Then the load fails as unavailable data", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
			})
		})
	})
}

func TestLoader_NoRegionlikeHeader(t *testing.T) {
	Convey("Given a CSV with no state-like header", t, func() {
		src := "Name,Incidents\nAssam,412\nBihar,977\n"

		Convey("When loading it", func() {
			ds, err := dataset.NewLoader().Load(strings.NewReader(src))
			So(err, ShouldBeNil)

			Convey("Then the first non-numeric column is used as the region", func() {
				So(ds.RegionCol, ShouldEqual, "Name")
				So(ds.Records, ShouldHaveLength, 2)
			})
		})
	})
}

func TestLoader_Unavailable(t *testing.T) {
	Convey("Given a path that does not exist", t, func() {
		_, err := dataset.NewLoader().LoadFile(filepath.Join(t.TempDir(), "missing.csv"))

		Convey("Then the load fails with the unavailable kind", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given an empty file", t, func() {
		path := filepath.Join(t.TempDir(), "empty.csv")
		So(os.WriteFile(path, nil, 0o600), ShouldBeNil)

		Convey("Then the load fails rather than yielding records", func() {
			_, err := dataset.NewLoader().LoadFile(path)
			So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given a file with only numeric columns", t, func() {
		Convey("Then no region column can be found", func() {
			_, err := dataset.NewLoader().Load(strings.NewReader("a,b\n1,2\n3,4\n"))
			So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
		})
	})
}
