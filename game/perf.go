package game

import (
	"time"

	"github.com/pthm-cable/analogdigital/systems"
	"github.com/pthm-cable/analogdigital/telemetry"
)

// PhaseTiming is one frame phase's average cost.
type PhaseTiming struct {
	ID   string
	Name string
	Avg  time.Duration
	Pct  float64 // Share of the summed phase averages
}

// PhaseGroup is the timed phases of one registry category.
type PhaseGroup struct {
	Category string
	Phases   []PhaseTiming
}

// phaseTotal returns the sum of all phase averages.
func phaseTotal(s telemetry.PerfStats) time.Duration {
	var total time.Duration
	for _, d := range s.PhaseAvg {
		total += d
	}
	return total
}

// phaseGroups arranges the measured phases by registry category, in
// registration order. Phases without samples and empty categories are left
// out.
func phaseGroups(reg *systems.SystemRegistry, s telemetry.PerfStats) []PhaseGroup {
	total := phaseTotal(s)
	var groups []PhaseGroup
	for _, cat := range reg.Categories() {
		g := PhaseGroup{Category: cat}
		for _, info := range reg.ByCategory(cat) {
			avg, ok := s.PhaseAvg[info.ID]
			if !ok {
				continue
			}
			var pct float64
			if total > 0 {
				pct = float64(avg) / float64(total) * 100
			}
			g.Phases = append(g.Phases, PhaseTiming{ID: info.ID, Name: info.Name, Avg: avg, Pct: pct})
		}
		if len(g.Phases) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
