package schedule

import "strings"

// Movement is a named exercise or test with a measurement unit and an
// optimization direction. Name is the join key between the configured
// schedule and logged entries, so it must stay unique across all cycles.
type Movement struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	LowerIsBetter bool   `json:"lowerIsBetter"`
	// Disabled marks a day without a scheduled movement - data entry is off.
	Disabled bool `json:"disabled"`
}

// TBD is returned for dates with no scheduled movement.
var TBD = Movement{
	ID:       "tbd",
	Name:     "TBD",
	Unit:     "",
	Disabled: true,
}

func (m Movement) IsTBD() bool {
	return m.Disabled
}

// elapsed-time units, where a smaller result is the better one
var lowerIsBetterUnits = map[string]bool{
	"sec":     true,
	"seconds": true,
	"min":     true,
	"minutes": true,
	"time":    true,
}

var higherIsBetterUnits = map[string]bool{
	"lbs":    true,
	"kg":     true,
	"watts":  true,
	"mph":    true,
	"km/h":   true,
	"m":      true,
	"ft":     true,
	"reps":   true,
	"rounds": true,
	"cal":    true,
}

// movements that are timed regardless of how their unit was recorded
var lowerIsBetterMovements = map[string]bool{
	"500m Row":    true,
	"2k Row":      true,
	"400m Sprint": true,
	"1 Mile Run":  true,
}

// LowerIsBetter resolves the optimization direction for a movement by
// convention: elapsed-time units and a fixed set of named movements are
// lower-is-better, everything else is higher-is-better. Used for entries
// whose movement is no longer present in the configured schedule.
func LowerIsBetter(movementName, unit string) bool {
	if lowerIsBetterUnits[strings.ToLower(unit)] {
		return true
	}
	return lowerIsBetterMovements[movementName]
}

// unitDirectionKnown reports whether the direction convention covers the unit.
func unitDirectionKnown(unit string) bool {
	u := strings.ToLower(unit)
	return lowerIsBetterUnits[u] || higherIsBetterUnits[u]
}
