package engine

import (
	"fmt"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/sim"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// dayOfMonth returns the zero-based day index within the current month.
// Used by revenue proration.
func dayOfMonth(tick int64) int64 {
	return (tick % sim.TicksPerMonth) / sim.TicksPerDay
}

// FormatDate renders a tick as the in-game calendar date shown in the
// header, e.g. "March 14, Year 2".
func FormatDate(tick int64) string {
	month := (tick / sim.TicksPerMonth) % 12
	year := tick/(sim.TicksPerMonth*12) + 1
	return fmt.Sprintf("%s %d, Year %d", monthNames[month], dayOfMonth(tick)+1, year)
}
