package records

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"

	// shown on leaderboards for members without a display name
	AnonymousMember = "Member"
)

// Entry is one logged result: a single (owner, day) pair holds at most one
// entry, later saves replace earlier ones.
type Entry struct {
	ID           int       `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Date         time.Time `json:"date"`
	MovementName string    `json:"movementName"`
	Value        float64   `json:"value"`
	Unit         string    `json:"unit"`
	OwnerName    string    `json:"ownerName"`
	Gender       string    `json:"gender"`
	Notes        string    `json:"notes,omitempty"`
}

var ErrInvalidEntry = errors.New("invalid entry")

// Validate rejects malformed entries before they reach the store, so the
// ranking and series code can assume all stored values are valid positive
// finite numbers.
func (e Entry) Validate() error {
	if e.OwnerID == "" {
		return fmt.Errorf("%w: owner empty", ErrInvalidEntry)
	}
	if e.MovementName == "" {
		return fmt.Errorf("%w: movement name empty", ErrInvalidEntry)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date empty", ErrInvalidEntry)
	}
	if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
		return fmt.Errorf("%w: value %f not finite", ErrInvalidEntry, e.Value)
	}
	if e.Value <= 0 {
		return fmt.Errorf("%w: value %f not positive", ErrInvalidEntry, e.Value)
	}
	return nil
}
