package aggregate_test

import (
	"math/rand"
	"testing"

	aggregate "github.com/nkedia/crimeatlas/internal/domain/aggregate"
	"github.com/nkedia/crimeatlas/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(region string, value float64) model.Record {
	return model.Record{Region: region, RegionRaw: region, Value: value}
}

func TestAggregator_ByRegion(t *testing.T) {
	Convey("Given records for two regions", t, func() {
		records := []model.Record{
			rec("ca", 5),
			rec("ca", 3),
			rec("ny", 2),
		}
		agg := aggregate.New()

		Convey("When aggregating by region", func() {
			out := agg.Aggregate(records)

			Convey("Then duplicates are additive", func() {
				So(out, ShouldHaveLength, 2)
				So(out["ca"].Total, ShouldEqual, 8)
				So(out["ny"].Total, ShouldEqual, 2)
			})

			Convey("And record counts are tracked", func() {
				So(out["ca"].Records, ShouldEqual, 2)
				So(out["ny"].Records, ShouldEqual, 1)
			})

			Convey("And shares sum to one hundred", func() {
				So(out["ca"].Share+out["ny"].Share, ShouldAlmostEqual, 100, 1e-9)
				So(out["ca"].Share, ShouldAlmostEqual, 80, 1e-9)
			})

			Convey("And the output totals conserve the input sum", func() {
				var sum float64
				for _, fig := range out {
					sum += fig.Total
				}
				So(sum, ShouldEqual, aggregate.Sum(records))
			})
		})
	})
}

func TestAggregator_EmptyInput(t *testing.T) {
	Convey("Given no records", t, func() {
		agg := aggregate.New()

		Convey("When aggregating", func() {
			out := agg.Aggregate(nil)

			Convey("Then the mapping is empty, not nil and not an error", func() {
				So(out, ShouldNotBeNil)
				So(out, ShouldBeEmpty)
			})
		})
	})
}

func TestAggregator_KnownRegions(t *testing.T) {
	Convey("Given a known-regions set larger than the data", t, func() {
		known := map[string]string{
			"ca": "California",
			"ny": "New York",
			"tx": "Texas",
		}
		agg := aggregate.New(aggregate.WithKnownRegions(known))

		Convey("When only two regions appear in the records", func() {
			out := agg.Aggregate([]model.Record{rec("ca", 4), rec("ny", 1)})

			Convey("Then the missing region is zero-filled", func() {
				So(out, ShouldHaveLength, 3)
				So(out["tx"].Total, ShouldEqual, 0)
				So(out["tx"].Name, ShouldEqual, "Texas")
			})
		})

		Convey("When there are no records at all", func() {
			out := agg.Aggregate(nil)

			Convey("Then every known region appears with zero total", func() {
				So(out, ShouldHaveLength, 3)
				for _, fig := range out {
					So(fig.Total, ShouldEqual, 0)
					So(fig.Records, ShouldEqual, 0)
				}
			})
		})
	})
}

func TestAggregator_OrderIndependence(t *testing.T) {
	Convey("Given a record sequence and a shuffled copy", t, func() {
		records := []model.Record{
			rec("ka", 12), rec("mh", 7), rec("ka", 3),
			rec("tn", 9), rec("mh", 1), rec("tn", 0),
		}
		shuffled := make([]model.Record, len(records))
		copy(shuffled, records)
		rng := rand.New(rand.NewSource(7))
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		agg := aggregate.New()

		Convey("When aggregating both orders", func() {
			a := agg.Aggregate(records)
			b := agg.Aggregate(shuffled)

			Convey("Then the mappings are identical", func() {
				So(a, ShouldHaveLength, len(b))
				for key, fig := range a {
					So(b[key].Total, ShouldEqual, fig.Total)
					So(b[key].Records, ShouldEqual, fig.Records)
				}
			})
		})
	})
}

func TestAggregator_CategoryBreakdown(t *testing.T) {
	Convey("Given records with categories", t, func() {
		records := []model.Record{
			{Region: "mh", RegionRaw: "Maharashtra", Category: "murder", Value: 5},
			{Region: "mh", RegionRaw: "Maharashtra", Category: "theft", Value: 11},
			{Region: "mh", RegionRaw: "Maharashtra", Category: "theft", Value: 4},
			{Region: "ka", RegionRaw: "Karnataka", Category: "murder", Value: 2},
		}

		Convey("When aggregating by region", func() {
			out := aggregate.New().Aggregate(records)

			Convey("Then each figure carries per-category subtotals", func() {
				So(out["mh"].Total, ShouldEqual, 20)
				So(out["mh"].Breakdown["theft"], ShouldEqual, 15)
				So(out["mh"].Breakdown["murder"], ShouldEqual, 5)
				So(out["ka"].Breakdown["murder"], ShouldEqual, 2)
			})
		})

		Convey("When aggregating by the compound region+category key", func() {
			out := aggregate.New(aggregate.WithCategoryKey()).Aggregate(records)

			Convey("Then each region/category pair is its own group", func() {
				So(out, ShouldHaveLength, 3)
				So(out["mh|theft"].Total, ShouldEqual, 15)
				So(out["mh|murder"].Total, ShouldEqual, 5)
				So(out["ka|murder"].Total, ShouldEqual, 2)
			})

			Convey("And no per-category breakdown is nested inside groups", func() {
				So(out["mh|theft"].Breakdown, ShouldBeNil)
			})
		})
	})
}

func TestAggregator_NoInventedRegions(t *testing.T) {
	Convey("Given records without a known-regions set", t, func() {
		records := []model.Record{rec("wb", 6), rec("as", 2)}
		out := aggregate.New().Aggregate(records)

		Convey("Then output keys are exactly the distinct input regions", func() {
			So(out, ShouldHaveLength, 2)
			So(out, ShouldContainKey, "wb")
			So(out, ShouldContainKey, "as")
		})
	})
}
