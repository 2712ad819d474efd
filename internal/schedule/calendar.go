package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Calendar resolves calendar dates to scheduled movements. It is built once
// at startup from static configuration and is immutable afterwards, so all
// of its methods are safe for concurrent use.
type Calendar struct {
	cycles    []Cycle
	fallback  WeeklyTemplate
	movements map[string]Movement // keyed by display name
}

type MovementConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Unit string `toml:"unit"`
	// Direction overrides the unit convention: "higher" or "lower".
	Direction string `toml:"direction"`
}

type CycleConfig struct {
	Name  string `toml:"name"`
	Start string `toml:"start"`
	End   string `toml:"end"`
	// Weeks derives the end date when no explicit end is given.
	Weeks    int               `toml:"weeks"`
	Template map[string]string `toml:"template"`
}

type Config struct {
	Movements        []MovementConfig  `toml:"movements"`
	Cycles           []CycleConfig     `toml:"cycles"`
	FallbackTemplate map[string]string `toml:"fallback_template"`
}

// LoadCalendar reads and validates the cycles configuration file.
// All configuration problems surface here, at startup - never at query time.
func LoadCalendar(path string) (*Calendar, error) {
	var file Config
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("decode cycles file %s: %w", path, err)
	}
	return NewCalendar(file)
}

func NewCalendar(file Config) (*Calendar, error) {
	byID := make(map[string]Movement, len(file.Movements))
	byName := make(map[string]Movement, len(file.Movements))
	for _, mc := range file.Movements {
		movement, err := movementFromConfig(mc)
		if err != nil {
			return nil, err
		}
		if _, ok := byID[movement.ID]; ok {
			return nil, fmt.Errorf("duplicate movement id %q", movement.ID)
		}
		// the display name joins log entries to movements, so a repeated
		// name would silently merge two different movements in all views
		if _, ok := byName[movement.Name]; ok {
			return nil, fmt.Errorf("duplicate movement name %q", movement.Name)
		}
		byID[movement.ID] = movement
		byName[movement.Name] = movement
	}

	cycles := make([]Cycle, 0, len(file.Cycles))
	for _, cc := range file.Cycles {
		cycle, err := cycleFromConfig(cc, byID)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}

	for i := range cycles {
		for j := i + 1; j < len(cycles); j++ {
			if cycles[i].Contains(cycles[j].Start) || cycles[i].Contains(cycles[j].End) ||
				cycles[j].Contains(cycles[i].Start) {
				return nil, fmt.Errorf(
					"cycles %q and %q overlap",
					cycles[i].Name, cycles[j].Name,
				)
			}
		}
	}

	fallback, err := templateFromConfig(file.FallbackTemplate, byID)
	if err != nil {
		return nil, fmt.Errorf("fallback template: %w", err)
	}

	return &Calendar{
		cycles:    cycles,
		fallback:  fallback,
		movements: byName,
	}, nil
}

// Resolve maps a date to the movement scheduled for it in the first cycle
// containing the date. A weekday missing from the active cycle's template is
// looked up in the fallback template before giving up, so cycles configured
// before per-cycle templates existed keep resolving. Returns TBD when
// nothing is scheduled.
func (c *Calendar) Resolve(date time.Time) Movement {
	for _, cycle := range c.cycles {
		if !cycle.Contains(date) {
			continue
		}
		if movement, ok := cycle.Template[date.Weekday()]; ok {
			return movement
		}
		if movement, ok := c.fallback[date.Weekday()]; ok {
			return movement
		}
		return TBD
	}
	return TBD
}

// Cycles returns the configured cycle list, in declaration order.
func (c *Calendar) Cycles() []Cycle {
	return c.cycles
}

// MovementByName looks a movement up by its display name.
func (c *Calendar) MovementByName(name string) (Movement, bool) {
	movement, ok := c.movements[name]
	return movement, ok
}

func movementFromConfig(mc MovementConfig) (Movement, error) {
	if mc.ID == "" || mc.Name == "" {
		return Movement{}, errors.New("movement id and name must be set")
	}
	if mc.Unit == "" {
		return Movement{}, fmt.Errorf("movement %q: unit must be set", mc.ID)
	}

	movement := Movement{
		ID:   mc.ID,
		Name: mc.Name,
		Unit: mc.Unit,
	}

	switch strings.ToLower(mc.Direction) {
	case "":
		if !unitDirectionKnown(mc.Unit) && !lowerIsBetterMovements[mc.Name] {
			return Movement{}, fmt.Errorf(
				"movement %q: direction for unit %q unknown, set direction explicitly",
				mc.ID, mc.Unit,
			)
		}
		movement.LowerIsBetter = LowerIsBetter(mc.Name, mc.Unit)
	case "lower":
		movement.LowerIsBetter = true
	case "higher":
		movement.LowerIsBetter = false
	default:
		return Movement{}, fmt.Errorf("movement %q: invalid direction %q", mc.ID, mc.Direction)
	}

	return movement, nil
}

func cycleFromConfig(cc CycleConfig, byID map[string]Movement) (Cycle, error) {
	if cc.Name == "" {
		return Cycle{}, errors.New("cycle name must be set")
	}

	start, err := ParseDay(cc.Start)
	if err != nil {
		return Cycle{}, fmt.Errorf("cycle %q: %w", cc.Name, err)
	}

	var end time.Time
	switch {
	case cc.End != "" && cc.Weeks > 0:
		return Cycle{}, fmt.Errorf("cycle %q: set either end or weeks, not both", cc.Name)
	case cc.End != "":
		if end, err = ParseDay(cc.End); err != nil {
			return Cycle{}, fmt.Errorf("cycle %q: %w", cc.Name, err)
		}
	case cc.Weeks > 0:
		end = start.AddDate(0, 0, cc.Weeks*7-1)
	default:
		return Cycle{}, fmt.Errorf("cycle %q: end date or week count must be set", cc.Name)
	}

	if end.Before(start) {
		return Cycle{}, fmt.Errorf("cycle %q: ends before it starts", cc.Name)
	}

	template, err := templateFromConfig(cc.Template, byID)
	if err != nil {
		return Cycle{}, fmt.Errorf("cycle %q: %w", cc.Name, err)
	}

	return Cycle{
		Name:     cc.Name,
		Start:    start,
		End:      end,
		Template: template,
	}, nil
}

func templateFromConfig(days map[string]string, byID map[string]Movement) (WeeklyTemplate, error) {
	template := make(WeeklyTemplate, len(days))
	for dayName, movementID := range days {
		weekday, ok := weekdayNames[strings.ToLower(dayName)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", dayName)
		}
		movement, ok := byID[movementID]
		if !ok {
			return nil, fmt.Errorf("unknown movement id %q for %s", movementID, dayName)
		}
		template[weekday] = movement
	}
	return template, nil
}
