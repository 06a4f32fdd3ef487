package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pbaille/trip/internal/domain"
)

var (
	ErrDayOutOfRange   = errors.New("day index out of range")
	ErrInvalidActivity = errors.New("invalid activity")
	ErrDuplicateID     = errors.New("activity id already used on another day")
)

// Saver persists the full day sequence
type Saver interface {
	Save(ctx context.Context, days []domain.DaySchedule) error
}

// Loader restores a previously saved day sequence.
// ok is false when nothing usable was stored.
type Loader interface {
	Load(ctx context.Context) (days []domain.DaySchedule, ok bool)
}

// Persister is the persistence adapter the store is opened with
type Persister interface {
	Saver
	Loader
}

// Store owns the itinerary and is the only thing that mutates it
type Store struct {
	days  []domain.DaySchedule
	saver Saver
	log   *log.Logger
}

// New creates a Store over the given days. saver may be nil.
func New(days []domain.DaySchedule, saver Saver) *Store {
	return &Store{
		days:  domain.CloneDays(days),
		saver: saver,
		log:   log.Default(),
	}
}

// Open restores the itinerary from p, seeding the default trip when nothing
// usable is stored. The resulting state is saved back immediately.
func Open(ctx context.Context, p Persister) *Store {
	days, ok := p.Load(ctx)
	if !ok {
		days = domain.DefaultItinerary()
	}
	s := New(days, p)
	s.persist(ctx)
	return s
}

// SetLogger replaces the logger used for save failures
func (s *Store) SetLogger(l *log.Logger) {
	s.log = l
}

// persist saves the current state under the caller's context. Failures,
// cancellation included, are logged and the in-memory itinerary stays
// authoritative.
func (s *Store) persist(ctx context.Context) {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(ctx, s.days); err != nil {
		s.log.Printf("save itinerary: %v", err)
	}
}

func (s *Store) checkDay(dayIndex int) error {
	if dayIndex < 0 || dayIndex >= len(s.days) {
		return fmt.Errorf("%w: %d (have %d days)", ErrDayOutOfRange, dayIndex, len(s.days))
	}
	return nil
}

// Len returns the number of days
func (s *Store) Len() int {
	return len(s.days)
}

// Days returns a copy of the whole itinerary
func (s *Store) Days() []domain.DaySchedule {
	return domain.CloneDays(s.days)
}

// Day returns a copy of one day
func (s *Store) Day(dayIndex int) (domain.DaySchedule, error) {
	if err := s.checkDay(dayIndex); err != nil {
		return domain.DaySchedule{}, err
	}
	return s.days[dayIndex].Clone(), nil
}

// Find locates an activity by id across all days
func (s *Store) Find(id string) (dayIndex int, a domain.Activity, ok bool) {
	for i, d := range s.days {
		for _, act := range d.Activities {
			if act.ID == id {
				return i, act, true
			}
		}
	}
	return -1, domain.Activity{}, false
}

// FindPrefix locates the first activity whose id starts with prefix
func (s *Store) FindPrefix(prefix string) (dayIndex int, a domain.Activity, ok bool) {
	if prefix == "" {
		return -1, domain.Activity{}, false
	}
	if i, act, ok := s.Find(prefix); ok {
		return i, act, true
	}
	for i, d := range s.days {
		for _, act := range d.Activities {
			if strings.HasPrefix(act.ID, prefix) {
				return i, act, true
			}
		}
	}
	return -1, domain.Activity{}, false
}

// NewActivity returns the defaults used when adding an activity
func (s *Store) NewActivity() domain.Activity {
	return domain.Activity{
		ID:       uuid.NewString(),
		Time:     "12:00",
		Category: domain.Flexible,
		Currency: domain.JPY,
	}
}

// ToggleComplete flips the completion flag of the activity with the given id.
// Unknown ids are ignored; the return value reports whether one matched.
func (s *Store) ToggleComplete(ctx context.Context, id string) bool {
	found := false
	for i := range s.days {
		acts := s.days[i].Activities
		for j := range acts {
			if acts[j].ID == id {
				acts[j].IsCompleted = !acts[j].IsCompleted
				found = true
			}
		}
	}
	s.persist(ctx)
	return found
}

// Upsert replaces the activity with the same id in the given day, keeping its
// position, or appends it when the day has no such id. An empty id gets a
// fresh one. The stored activity is returned.
func (s *Store) Upsert(ctx context.Context, dayIndex int, a domain.Activity) (domain.Activity, error) {
	if err := s.checkDay(dayIndex); err != nil {
		return domain.Activity{}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := ValidateActivity(a); err != nil {
		return domain.Activity{}, err
	}
	if owner, _, ok := s.Find(a.ID); ok && owner != dayIndex {
		return domain.Activity{}, fmt.Errorf("%w: %s (day %d)", ErrDuplicateID, a.ID, owner)
	}

	day := &s.days[dayIndex]
	idx := slices.IndexFunc(day.Activities, func(x domain.Activity) bool { return x.ID == a.ID })
	if idx >= 0 {
		day.Activities[idx] = a
	} else {
		day.Activities = append(day.Activities, a)
	}

	s.persist(ctx)
	return a, nil
}

// Delete removes the activity with the given id from one day.
// Removing an id the day does not hold is a no-op.
func (s *Store) Delete(ctx context.Context, dayIndex int, id string) error {
	if err := s.checkDay(dayIndex); err != nil {
		return err
	}
	day := &s.days[dayIndex]
	day.Activities = slices.DeleteFunc(day.Activities, func(x domain.Activity) bool { return x.ID == id })
	s.persist(ctx)
	return nil
}

// ActivitiesSortedByTime returns one day's activities ordered by time.
// Activities sharing a time keep their insertion order.
func (s *Store) ActivitiesSortedByTime(dayIndex int) ([]domain.Activity, error) {
	if err := s.checkDay(dayIndex); err != nil {
		return nil, err
	}
	return SortByTime(s.days[dayIndex].Activities), nil
}

// AllActivities returns every activity in day order, then insertion order
func (s *Store) AllActivities() []domain.Activity {
	var all []domain.Activity
	for _, d := range s.days {
		all = append(all, d.Activities...)
	}
	return all
}

// SortByTime returns a time-ordered copy of activities (stable)
func SortByTime(activities []domain.Activity) []domain.Activity {
	sorted := slices.Clone(activities)
	slices.SortStableFunc(sorted, func(a, b domain.Activity) int {
		return strings.Compare(a.Time, b.Time)
	})
	return sorted
}

// TotalCostByCategory sums cost per category over activities in the given
// currency. Categories totalling zero are left out.
func TotalCostByCategory(activities []domain.Activity, currency domain.Currency) map[domain.Category]int {
	totals := make(map[domain.Category]int)
	for _, a := range activities {
		if a.Currency != currency {
			continue
		}
		totals[a.Category] += a.Cost
	}
	for c, v := range totals {
		if v == 0 {
			delete(totals, c)
		}
	}
	return totals
}
