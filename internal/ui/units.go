package ui

import (
	"fmt"
)

const kmPerMile = 1.609344

// Imperial switches distance and speed output to miles.
var Imperial bool

// FormatDistance renders a distance given in kilometres.
func FormatDistance(km float64) string {
	if Imperial {
		return fmt.Sprintf("%.2f mi", km/kmPerMile)
	}

	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}

	return fmt.Sprintf("%.2f km", km)
}

// FormatSpeed renders a speed given in km/h. A missing speed is shown as a
// dash.
func FormatSpeed(kmh float64, ok bool) string {
	if !ok {
		return "-"
	}

	if Imperial {
		return fmt.Sprintf("%.1f mph", kmh/kmPerMile)
	}

	return fmt.Sprintf("%.1f km/h", kmh)
}
