package engine

import (
	"testing"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/sim"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		tick int64
		want string
	}{
		{0, "January 1, Year 1"},
		{sim.TicksPerDay - 1, "January 1, Year 1"},
		{sim.TicksPerDay, "January 2, Year 1"},
		{sim.TicksPerMonth, "February 1, Year 1"},
		{2*sim.TicksPerMonth + 13*sim.TicksPerDay, "March 14, Year 1"},
		{12 * sim.TicksPerMonth, "January 1, Year 2"},
		{14*sim.TicksPerMonth + 13*sim.TicksPerDay, "March 14, Year 2"},
	}

	for _, c := range cases {
		if got := FormatDate(c.tick); got != c.want {
			t.Errorf("FormatDate(%d): expected %q, got %q", c.tick, c.want, got)
		}
	}
}

func TestDayOfMonth(t *testing.T) {
	if got := dayOfMonth(0); got != 0 {
		t.Errorf("Expected day 0 at tick 0, got %d", got)
	}
	if got := dayOfMonth(sim.TicksPerMonth - 1); got != int64(sim.DaysPerMonth-1) {
		t.Errorf("Expected the last day of the month, got %d", got)
	}
	if got := dayOfMonth(sim.TicksPerMonth); got != 0 {
		t.Errorf("Expected day 0 after the month boundary, got %d", got)
	}
}
