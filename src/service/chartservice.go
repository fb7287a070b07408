package service

import (
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"campus/energy/entity"
)

// ChartServiceImpl renders the composite dashboard image: a daily
// trend line per building, a weekly-average bar comparison and a
// peak-hour scatter, tiled vertically into one PNG.
type ChartServiceImpl struct{}

func (c *ChartServiceImpl) RenderDashboard(
	daily []entity.DailyAggregate,
	weekly []entity.WeeklyAggregate,
	peaks []entity.PeakReading,
	path string,
	widthCm, heightCm float64,
) error {
	buildings := buildingOrder(daily)

	trend, err := c.dailyTrendPanel(daily, buildings)
	if err != nil {
		return fmt.Errorf("daily trend panel: %w", err)
	}
	bars, err := c.weeklyAveragePanel(weekly, buildings)
	if err != nil {
		return fmt.Errorf("weekly average panel: %w", err)
	}
	scatter, err := c.peakHourPanel(peaks, buildings)
	if err != nil {
		return fmt.Errorf("peak hour panel: %w", err)
	}

	img := vgimg.New(vg.Length(widthCm)*vg.Centimeter, vg.Length(heightCm)*vg.Centimeter)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 3, Cols: 1,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 4, PadBottom: vg.Millimeter * 4,
		PadLeft: vg.Millimeter * 4, PadRight: vg.Millimeter * 4,
	}
	panels := [][]*plot.Plot{{trend}, {bars}, {scatter}}
	canvases := plot.Align(panels, tiles, dc)
	for i, row := range panels {
		row[0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("encode png %s: %w", path, err)
	}
	return nil
}

func (c *ChartServiceImpl) dailyTrendPanel(daily []entity.DailyAggregate, buildings []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Daily Energy Consumption"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Daily kWh"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	for i, b := range buildings {
		var pts plotter.XYs
		for _, d := range daily {
			if d.BuildingID != b {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(d.Day.Unix()), Y: d.TotalKwh})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(b, line)
	}
	p.Legend.Top = true
	return p, nil
}

func (c *ChartServiceImpl) weeklyAveragePanel(weekly []entity.WeeklyAggregate, buildings []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Average Weekly Energy Use by Building"
	p.Y.Label.Text = "Average Weekly kWh"

	// mean of weekly totals per building
	values := make(plotter.Values, len(buildings))
	for i, b := range buildings {
		var total float64
		var weeks int
		for _, w := range weekly {
			if w.BuildingID == b {
				total += w.TotalKwh
				weeks++
			}
		}
		if weeks > 0 {
			values[i] = total / float64(weeks)
		}
	}

	bars, err := plotter.NewBarChart(values, vg.Points(25))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(1)
	p.Add(bars)
	p.NominalX(buildings...)
	return p, nil
}

func (c *ChartServiceImpl) peakHourPanel(peaks []entity.PeakReading, buildings []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Peak-Hour Consumption per Building"
	p.X.Label.Text = "Hour of Day"
	p.Y.Label.Text = "kWh at Peak Hour"
	p.X.Min = 0
	p.X.Max = 23
	p.Add(plotter.NewGrid())

	for i, b := range buildings {
		var pts plotter.XYs
		for _, pk := range peaks {
			if pk.BuildingID != b {
				continue
			}
			pts = append(pts, plotter.XY{
				X: float64(pk.Reading.Timestamp.UTC().Hour()),
				Y: pk.Reading.ConsumptionKwh,
			})
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(b, s)
	}
	p.Legend.Top = true
	return p, nil
}

func buildingOrder(daily []entity.DailyAggregate) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range daily {
		if !seen[d.BuildingID] {
			seen[d.BuildingID] = true
			out = append(out, d.BuildingID)
		}
	}
	sort.Strings(out)
	return out
}
