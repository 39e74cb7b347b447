package charts

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
)

// Barchart draws one horizontal bar per line trace holding its last value.
func Barchart(fig *Figure, width int) string {
	barData := make([]barchart.BarData, 0)
	for _, tr := range fig.Lines() {
		if len(tr.Y) == 0 {
			continue
		}
		last := tr.Y[len(tr.Y)-1]
		barData = append(barData, barchart.BarData{
			Label: fmt.Sprintf("%s (%.4g)", tr.Name, last),
			Values: []barchart.BarValue{
				{Name: tr.Name, Value: last, Style: SeriesStyle(tr.ColorIndex)},
			},
		})
	}

	bc := barchart.New(width, len(barData)*2, barchart.WithDataSet(barData), barchart.WithHorizontalBars())
	bc.Draw()

	return bc.View()
}
