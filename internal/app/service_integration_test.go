package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/nkedia/crimeatlas/internal/app"
)

// buildLargeCSV produces a dataset covering every boundary state plus a
// spread of categories, with a handful of malformed rows mixed in.
func buildLargeCSV(rows int) string {
	states := []string{"Odisha", "Tamil Nadu", "Kerala"}
	categories := []string{"Theft", "Burglary", "Riots", "Cheating"}

	var b strings.Builder
	b.WriteString("Sl. No.,State/UT,Crime Head,2022\n")
	for i := 0; i < rows; i++ {
		if i%97 == 0 {
			// Malformed value, should be skipped without failing the load.
			fmt.Fprintf(&b, "%d,%s,%s,n/a\n", i+1, states[i%len(states)], categories[i%len(categories)])
			continue
		}
		fmt.Fprintf(&b, "%d,%s,%s,%d\n", i+1, states[i%len(states)], categories[i%len(categories)], 10+i%50)
	}
	return b.String()
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with full integration", t, func() {
		csvPath := writeTempFile(t, "crimes.csv", buildLargeCSV(1000))
		geoPath := writeTempFile(t, "states.geojson", sampleGeoJSON)
		svc := service.New(
			service.WithDatasetPath(csvPath),
			service.WithBoundariesPath(geoPath),
			service.WithMaxSnapshots(4),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And the malformed rows should be counted, not fatal", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["skippedRows"], ShouldEqual, 11)
				So(stats["records"], ShouldEqual, 989)
			})

			Convey("And every query surface should agree on the totals", func() {
				figs, ferr := svc.Figures(ctx, service.GroupByRegion, 0)
				So(ferr, ShouldBeNil)
				So(len(figs), ShouldEqual, 3)

				var figureTotal float64
				for _, f := range figs {
					figureTotal += f.Total
				}
				So(figureTotal, ShouldEqual, svc.GetStats()["totalValue"])

				fc, unmatched, cerr := svc.Choropleth(ctx)
				So(cerr, ShouldBeNil)
				So(unmatched, ShouldBeEmpty)

				var mapTotal float64
				for _, feat := range fc.Features {
					value, _ := feat.Properties["metric_value"].(float64)
					mapTotal += value
				}
				So(mapTotal, ShouldEqual, figureTotal)
			})
		})

		Convey("When handling service lifecycle", func() {
			Convey("And starting and stopping multiple times", func() {
				err := svc.Start(ctx)
				So(err, ShouldBeNil)

				svc.Stop()
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)

				err = svc.Start(ctx)
				So(err, ShouldBeNil)
				stats = svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})
		})
	})
}

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a started service with concurrent operations", t, func() {
		csvPath := writeTempFile(t, "crimes.csv", buildLargeCSV(500))
		geoPath := writeTempFile(t, "states.geojson", sampleGeoJSON)
		svc := startedService(t,
			service.WithDatasetPath(csvPath),
			service.WithBoundariesPath(geoPath),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When multiple goroutines query while uploads replace the snapshot", func() {
			numReaders := 10
			done := make(chan bool, numReaders+1)
			errs := make(chan error, numReaders*30)

			for i := 0; i < numReaders; i++ {
				go func() {
					for j := 0; j < 10; j++ {
						if _, err := svc.Figures(ctx, service.GroupByRegion, 10); err != nil {
							errs <- err
							continue
						}
						if _, _, err := svc.Choropleth(ctx); err != nil {
							errs <- err
							continue
						}
						if _, err := svc.RegionFigure(ctx, "Odisha"); err != nil {
							errs <- err
						}
					}
					done <- true
				}()
			}

			go func() {
				for j := 0; j < 5; j++ {
					upload := buildLargeCSV(200)
					if _, err := svc.UploadDataset(ctx, fmt.Sprintf("upload-%d.csv", j), strings.NewReader(upload)); err != nil {
						errs <- err
					}
				}
				done <- true
			}()

			for i := 0; i < numReaders+1; i++ {
				<-done
			}

			Convey("Then no operation should fail", func() {
				select {
				case err := <-errs:
					So(err, ShouldBeNil)
				default:
					So(true, ShouldBeTrue)
				}
			})

			Convey("And the snapshot cap should hold", func() {
				snaps := svc.Snapshots(ctx)
				So(len(snaps), ShouldBeLessThanOrEqualTo, 16)
				So(snaps[0].Source, ShouldEqual, "upload-4.csv")
			})
		})
	})
}
