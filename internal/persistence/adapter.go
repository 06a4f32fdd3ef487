// Package persistence saves and restores the itinerary through a single
// storage slot. Snapshots carry an explicit version; older versions are
// upgraded through declared migration steps and anything that cannot be
// upgraded is reported as "no data" so the caller reseeds.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pbaille/trip/internal/domain"
	"github.com/pbaille/trip/internal/storage"
)

// SlotKey names the slot holding the saved trip
const SlotKey = "fukuoka_trip_data"

// CurrentVersion is the snapshot version written by Save
const CurrentVersion = 2

type snapshot struct {
	Version int                  `json:"version"`
	SavedAt time.Time            `json:"savedAt"`
	Days    []domain.DaySchedule `json:"days"`
}

type envelope struct {
	Version int             `json:"version"`
	Days    json.RawMessage `json:"days"`
}

// migration upgrades the raw day list of version n to version n+1
type migration func(days json.RawMessage) (json.RawMessage, error)

var migrations = map[int]migration{
	1: migrateLegacyDays,
}

// Adapter loads and saves the itinerary under one slot key
type Adapter struct {
	slot storage.Slot
	key  string
	log  *log.Logger
	now  func() time.Time
}

// New creates an Adapter writing to SlotKey in slot
func New(slot storage.Slot) *Adapter {
	return &Adapter{
		slot: slot,
		key:  SlotKey,
		log:  log.Default(),
		now:  time.Now,
	}
}

// SetLogger replaces the logger used for discarded snapshots
func (a *Adapter) SetLogger(l *log.Logger) {
	a.log = l
}

// Save writes the full day sequence as a current-version snapshot
func (a *Adapter) Save(ctx context.Context, days []domain.DaySchedule) error {
	data, err := encode(days, a.now())
	if err != nil {
		return err
	}
	if err := a.slot.Set(ctx, a.key, string(data)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load restores the saved itinerary. ok is false when the slot is empty or
// its content cannot be used; the reason is logged, never returned.
func (a *Adapter) Load(ctx context.Context) ([]domain.DaySchedule, bool) {
	raw, found, err := a.slot.Get(ctx, a.key)
	if err != nil {
		a.log.Printf("read snapshot: %v", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	days, err := decode([]byte(raw))
	if err != nil {
		a.log.Printf("discarding saved itinerary: %v", err)
		return nil, false
	}
	return days, true
}

func encode(days []domain.DaySchedule, now time.Time) ([]byte, error) {
	out := domain.CloneDays(days)
	for i := range out {
		if out[i].Activities == nil {
			out[i].Activities = []domain.Activity{}
		}
	}
	data, err := json.Marshal(snapshot{
		Version: CurrentVersion,
		SavedAt: now.UTC(),
		Days:    out,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

func decode(raw []byte) ([]domain.DaySchedule, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty snapshot")
	}

	var env envelope
	if raw[0] == '[' {
		// Version 1 stored the bare day array.
		env = envelope{Version: 1, Days: raw}
	} else if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if env.Version > CurrentVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than %d", env.Version, CurrentVersion)
	}
	for v := env.Version; v < CurrentVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return nil, fmt.Errorf("no migration from snapshot version %d", v)
		}
		upgraded, err := step(env.Days)
		if err != nil {
			return nil, fmt.Errorf("migrate snapshot from version %d: %w", v, err)
		}
		env.Days = upgraded
	}

	var days []domain.DaySchedule
	if err := json.Unmarshal(env.Days, &days); err != nil {
		return nil, fmt.Errorf("unmarshal days: %w", err)
	}
	if err := checkShape(days); err != nil {
		return nil, err
	}
	return days, nil
}

// migrateLegacyDays accepts the version 1 array only when every day already
// carries weather; earlier arrays predate it and are not upgraded.
func migrateLegacyDays(raw json.RawMessage) (json.RawMessage, error) {
	var days []struct {
		Weather json.RawMessage `json:"weather"`
	}
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, fmt.Errorf("unmarshal legacy days: %w", err)
	}
	for i, d := range days {
		if len(d.Weather) == 0 || string(d.Weather) == "null" {
			return nil, fmt.Errorf("day %d has no weather", i)
		}
	}
	return raw, nil
}
