package charts

import "gonum.org/v1/plot/vg"

const (
	// ChartHeightRatio determines chart height as width/ChartHeightRatio.
	ChartHeightRatio = 8

	// MinChartHeight is the floor for timeseries chart height.
	MinChartHeight = 8
)

const (
	// DefaultImageWidth is the image width when neither the renderer nor the figure sets one.
	DefaultImageWidth = 8 * vg.Inch

	// DefaultImageHeight is the image height when the renderer sets none.
	DefaultImageHeight = 4.5 * vg.Inch

	// ImageDPI converts layout widths in pixels to image lengths.
	ImageDPI = 96
)
