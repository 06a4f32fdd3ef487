package persistence

import (
	"errors"
	"fmt"
	"time"

	"github.com/pbaille/trip/internal/domain"
	"github.com/pbaille/trip/internal/itinerary"
)

const dateLayout = "2006-01-02"

// checkShape validates every day, not just the first: ids and dates present,
// dates ascending, weather set, activity ids unique across the trip. Each
// activity must also pass the rules applied on upsert.
func checkShape(days []domain.DaySchedule) error {
	if len(days) == 0 {
		return errors.New("snapshot has no days")
	}

	seen := make(map[string]bool)
	var prev time.Time
	for i, d := range days {
		if d.ID == "" {
			return fmt.Errorf("day %d has no id", i)
		}
		date, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			return fmt.Errorf("day %d: bad date %q", i, d.Date)
		}
		if i > 0 && !date.After(prev) {
			return fmt.Errorf("day %d: date %s not after previous day", i, d.Date)
		}
		prev = date
		if d.Weather == nil {
			return fmt.Errorf("day %d has no weather", i)
		}

		for _, a := range d.Activities {
			if a.ID == "" {
				return fmt.Errorf("day %d: activity without id", i)
			}
			if seen[a.ID] {
				return fmt.Errorf("day %d: duplicate activity id %s", i, a.ID)
			}
			seen[a.ID] = true
			if err := itinerary.ValidateActivity(a); err != nil {
				return fmt.Errorf("day %d: activity %s: %w", i, a.ID, err)
			}
		}
	}
	return nil
}
