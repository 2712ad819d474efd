package records

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mkovacc/liftboard/internal/schedule"
	"github.com/mkovacc/liftboard/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const DefaultLeaderboardSize = 5

// movementDirectory resolves movement metadata by display name. Backed by
// the schedule calendar; entries for movements no longer configured fall
// back to the unit convention.
type movementDirectory interface {
	MovementByName(name string) (schedule.Movement, bool)
}

// Row is one leaderboard position: a person's single best entry for a
// movement. Derived on each query, never stored.
type Row struct {
	Person string  `json:"person"`
	Value  float64 `json:"value"`
	Entry  Entry   `json:"entry"`
}

type Leaderboard struct {
	MovementName  string `json:"movementName"`
	Unit          string `json:"unit"`
	LowerIsBetter bool   `json:"lowerIsBetter"`
	Men           []Row  `json:"men"`
	Women         []Row  `json:"women"`
}

// Point is one value of an owner's progress series for a movement.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

type Analyzer struct {
	repo      entriesRepo
	movements movementDirectory
}

func NewAnalyzer(repo entriesRepo, movements movementDirectory) *Analyzer {
	return &Analyzer{
		repo:      repo,
		movements: movements,
	}
}

// Leaderboard computes the per-gender best-record board for a movement:
// each person's single best entry, sorted in the movement's optimal
// direction and cut to topN. Entries with an unrecognized gender are left
// out entirely. Deterministic for a given entry set.
func (a *Analyzer) Leaderboard(
	ctx context.Context,
	movementName string,
	topN int,
) (_ *Leaderboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.records.leaderboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("movement_name", movementName))
	span.SetAttributes(attribute.Int("top_n", topN))

	if topN <= 0 {
		topN = DefaultLeaderboardSize
	}

	entries, err := a.repo.ListAll(ctx, EntryParams{
		MovementName: movementName,
	})
	if err != nil {
		return nil, err
	}

	board := &Leaderboard{
		MovementName:  movementName,
		LowerIsBetter: a.lowerIsBetter(movementName, entries),
		Men:           []Row{},
		Women:         []Row{},
	}
	if movement, ok := a.movements.MovementByName(movementName); ok {
		board.Unit = movement.Unit
	} else if len(entries) > 0 {
		board.Unit = entries[0].Unit
	}

	bestMen := bestPerPerson(entries, GenderMale, board.LowerIsBetter)
	bestWomen := bestPerPerson(entries, GenderFemale, board.LowerIsBetter)

	board.Men = topRows(bestMen, board.LowerIsBetter, topN)
	board.Women = topRows(bestWomen, board.LowerIsBetter, topN)

	return board, nil
}

// Series builds the owner's chronological value series for a movement,
// optionally cut to a closed date range. Days without an entry are simply
// absent, there is no gap filling or resampling.
func (a *Analyzer) Series(
	ctx context.Context,
	ownerID string,
	movementName string,
	from, to *time.Time,
) (_ []Point, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.records.series")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("movement_name", movementName))
	span.SetAttributes(attribute.String("owner_id", ownerID))

	entries, err := a.repo.ListAll(ctx, EntryParams{
		MovementName: movementName,
		OwnerID:      ownerID,
		From:         from,
		To:           to,
	})
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(entries))
	for _, e := range entries {
		points = append(points, Point{
			Date:  e.Date,
			Value: e.Value,
		})
	}

	// the repo already orders by date, but the series contract is
	// chronological regardless of where the snapshot came from
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points, nil
}

func (a *Analyzer) lowerIsBetter(movementName string, entries []Entry) bool {
	if movement, ok := a.movements.MovementByName(movementName); ok {
		return movement.LowerIsBetter
	}
	unit := ""
	if len(entries) > 0 {
		unit = entries[0].Unit
	}
	return schedule.LowerIsBetter(movementName, unit)
}

// bestPerPerson keeps one entry per person: the best one in the given
// direction. On equal values the later entry wins.
func bestPerPerson(entries []Entry, gender string, lowerIsBetter bool) map[string]Entry {
	best := make(map[string]Entry)
	for _, e := range entries {
		if e.Gender != gender {
			continue
		}

		person := strings.TrimSpace(e.OwnerName)
		if person == "" {
			person = AnonymousMember
		}

		current, ok := best[person]
		if !ok || better(e.Value, current.Value, lowerIsBetter) {
			best[person] = e
		}
	}
	return best
}

func better(candidate, current float64, lowerIsBetter bool) bool {
	if lowerIsBetter {
		return candidate <= current
	}
	return candidate >= current
}

func topRows(best map[string]Entry, lowerIsBetter bool, topN int) []Row {
	rows := make([]Row, 0, len(best))
	for person, entry := range best {
		rows = append(rows, Row{
			Person: person,
			Value:  entry.Value,
			Entry:  entry,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value == rows[j].Value {
			// stable output for equal results
			return rows[i].Person < rows[j].Person
		}
		if lowerIsBetter {
			return rows[i].Value < rows[j].Value
		}
		return rows[i].Value > rows[j].Value
	})

	if len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}
