package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	TotalRays       int           // Camera rays plus every scattered bounce
	SamplesPerPixel int           // Samples taken for each pixel
	MaxDepth        int           // Maximum ray bounce depth
	NumTiles        int           // Tiles the image was split into
	NumWorkers      int           // Goroutines that rendered tiles
	Duration        time.Duration // Wall-clock render time
}

// merge accumulates the per-tile counters of other into s
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.TotalRays += other.TotalRays
}

// RaysPerSecond returns the ray throughput, 0 when no time was recorded
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalRays) / s.Duration.Seconds()
}

// StatsTable formats render statistics as a text table
func StatsTable(stats RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Samples/pixel", "Max depth", "Tiles", "Workers", "Rays", "Rays/sec"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%d", stats.NumTiles),
		fmt.Sprintf("%d", stats.NumWorkers),
		fmt.Sprintf("%d", stats.TotalRays),
		fmt.Sprintf("%.0f", stats.RaysPerSecond()),
	})
	table.SetFooter([]string{"", "", "", "", "", "TOTAL", stats.Duration.String()})

	table.Render()
	return buf.String()
}
