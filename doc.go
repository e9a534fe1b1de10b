// Package salesrace renders animated bar chart race GIFs from retail sales
// data.
//
// # Quick Start
//
// Load the raw sales CSV, aggregate it into a year-by-sub-category table,
// and render one GIF per target platform:
//
//	f, err := os.Open("data/superstore.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	records, err := salesrace.ReadRecords(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, err := salesrace.Aggregate(records)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svc := salesrace.New()
//	gifBytes, err := svc.Render(ctx, salesrace.Input{
//	    Table:     table,
//	    Layout:    salesrace.PresetLinkedIn(),
//	    Animation: salesrace.DefaultAnimation(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("bar_chart_race_linkedin.gif", gifBytes, 0644)
//
// # Rendering Pipeline
//
// The rendering process follows these stages:
//
//  1. CSV ingest (Latin-1 decode, order-date parsing)
//  2. Aggregation into a pivot table (years as rows, sub-categories as columns)
//  3. Frame planning (value and rank interpolation between periods)
//  4. Frame drawing (horizontal bars, labels, period marker)
//  5. GIF encoding (median-cut quantization) and last-frame hold
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := salesrace.New(
//	    salesrace.WithTitle("Yearly Sales by Sub-Categories"),
//	    salesrace.WithHold(2 * time.Second),
//	)
//
// Layout presets exist for the supported social platforms: PresetLinkedIn
// (landscape), PresetInstagramFeed (square), and PresetInstagramStory
// (portrait). Custom layouts can be built directly from the Layout struct.
package salesrace
