package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"slices"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/mitchellh/mapstructure"

	"github.com/forest33/bitguard/business/entity"
)

// readVerdicts collects "verdict" events from a JSON log, other lines are skipped
func readVerdicts(r io.Reader) (*Report, error) {
	report := newReport()

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		line := map[string]interface{}{}
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			report.Skipped++
			continue
		}

		le := &LogEntity{}
		if err := mapstructure.Decode(line, le); err != nil || le.Message != entity.VerdictEventMessage {
			continue
		}

		ev := &entity.VerdictEvent{}
		if err := decodeEvent(line, ev); err != nil {
			zlog.Error().Err(err).Str("time", le.Time).Msg("failed to decode verdict event")
			report.Skipped++
			continue
		}

		report.add(ev)
	}

	return report, scanner.Err()
}

func decodeEvent(line map[string]interface{}, ev *entity.VerdictEvent) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           ev,
	})
	if err != nil {
		return err
	}
	return dec.Decode(line)
}

func chartVerdicts(logFile, outFile string) error {
	f, err := os.Open(logFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			zlog.Error().Err(err).Msg("failed to close log file")
		}
	}()

	report, err := readVerdicts(f)
	if err != nil {
		return err
	}

	zlog.Info().
		Int("schemes", len(report.Schemes)).
		Int("skipped", report.Skipped).
		Msg("log file processed")

	fo, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := fo.Close(); err != nil {
			zlog.Error().Err(err).Msg("failed to close chart file")
		}
	}()

	return renderReport(report, fo)
}

func renderReport(report *Report, w io.Writer) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(verdictBar(report), positionBar(report))

	return page.Render(w)
}

func verdictBar(report *Report) *charts.Bar {
	schemes := make([]string, 0, len(report.Schemes))
	for name := range report.Schemes {
		schemes = append(schemes, name)
	}
	sort.Slice(schemes, func(i, j int) bool {
		return schemeOrder(schemes[i]) < schemeOrder(schemes[j])
	})

	var (
		clean         = make([]opts.BarData, 0, len(schemes))
		detected      = make([]opts.BarData, 0, len(schemes))
		undetected    = make([]opts.BarData, 0, len(schemes))
		falseRejected = make([]opts.BarData, 0, len(schemes))
	)
	for _, name := range schemes {
		sv := report.Schemes[name]
		clean = append(clean, opts.BarData{Value: sv.Clean})
		detected = append(detected, opts.BarData{Value: sv.Detected})
		undetected = append(undetected, opts.BarData{Value: sv.Undetected})
		falseRejected = append(falseRejected, opts.BarData{Value: sv.FalseRejected})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Verdicts",
		}))

	bar.SetXAxis(schemes).
		AddSeries("Clean, accepted", clean).
		AddSeries("Corrupted, rejected", detected).
		AddSeries("Corrupted, accepted", undetected).
		AddSeries("Clean, rejected", falseRejected).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "verdicts"}))

	return bar
}

func positionBar(report *Report) *charts.Bar {
	positions := make([]int, 0, len(report.Positions))
	for pos := range report.Positions {
		positions = append(positions, pos)
	}
	slices.Sort(positions)

	var (
		labels = make([]string, 0, len(positions))
		counts = make([]opts.BarData, 0, len(positions))
	)
	for _, pos := range positions {
		labels = append(labels, strconv.Itoa(pos))
		counts = append(counts, opts.BarData{Value: report.Positions[pos]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Flipped bit positions",
		}))

	bar.SetXAxis(labels).AddSeries("Flips", counts)

	return bar
}

func schemeOrder(name string) int {
	if idx := slices.Index(entity.SchemeNames, name); idx != -1 {
		return idx
	}
	return len(entity.SchemeNames)
}
