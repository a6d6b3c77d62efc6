package timesheet

// IntensityBucket classifies an hours value for calendar shading.
type IntensityBucket int

const (
	IntensityNone   IntensityBucket = iota // 0 hours
	IntensityLow                           // under 4
	IntensityMedium                        // under 6
	IntensityHigh                          // under 8
	IntensityFull                          // 8 or more
)

// billedPalette shades billed days in blues, unbilledPalette shades
// unbilled days in greens. Index matches IntensityBucket.
var (
	billedPalette   = [5]string{"#EEEEEE", "#D1E8FF", "#92C1FF", "#5E9CFF", "#3366FF"}
	unbilledPalette = [5]string{"#EEEEEE", "#D1FFE8", "#92FFCB", "#5EFF9C", "#33FF66"}
)

// Intensity maps an hours value to its bucket. Values at or below zero land
// in IntensityNone, so the mapping is total over the reals.
func Intensity(hours float64) IntensityBucket {
	switch {
	case hours <= 0:
		return IntensityNone
	case hours < 4:
		return IntensityLow
	case hours < 6:
		return IntensityMedium
	case hours < 8:
		return IntensityHigh
	default:
		return IntensityFull
	}
}

// IntensityColor returns the color token for an hours value, using the
// billed or unbilled palette.
func IntensityColor(hours float64, billed bool) string {
	if billed {
		return billedPalette[Intensity(hours)]
	}
	return unbilledPalette[Intensity(hours)]
}
