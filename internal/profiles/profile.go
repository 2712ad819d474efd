package profiles

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkovacc/liftboard/internal/records"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile carries the display fields stamped onto saved record entries.
// Gender is either of the two leaderboard groups or empty for undisclosed.
type Profile struct {
	OwnerID     string    `json:"ownerId"`
	DisplayName string    `json:"displayName"`
	Gender      string    `json:"gender"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Profile) Validate() error {
	if p.OwnerID == "" {
		return errors.New("profile owner empty")
	}
	switch p.Gender {
	case "", records.GenderMale, records.GenderFemale:
		return nil
	default:
		return fmt.Errorf("unknown gender: %q", p.Gender)
	}
}
