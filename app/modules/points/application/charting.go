package pointsservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// maxChartBars caps how many teams the leaderboard chart renders.
const maxChartBars = 12

// GenerateLeaderboardChart renders the global team standings as a PNG bar
// chart, best team first.
func GenerateLeaderboardChart(standings []TeamStanding) ([]byte, error) {
	if len(standings) == 0 {
		return renderNoDataPlaceholder()
	}
	if len(standings) > maxChartBars {
		standings = standings[:maxChartBars]
	}

	bars := make([]chart.Value, len(standings))
	for i, standing := range standings {
		label := standing.Name
		if label == "" {
			label = fmt.Sprintf("Team %d", standing.TeamID)
		}
		bars[i] = chart.Value{
			Label: label,
			Value: standing.GlobalPoints,
		}
	}

	graph := chart.BarChart{
		Title:    "Global Leaderboard",
		Width:    800,
		Height:   400,
		BarWidth: 48,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Name: "Global Points",
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("pointsservice.GenerateLeaderboardChart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const msg = "No points recorded yet"

	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
