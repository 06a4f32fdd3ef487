package persistence

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pbaille/trip/internal/domain"
	"github.com/pbaille/trip/internal/itinerary"
	"github.com/pbaille/trip/internal/storage"
)

type brokenSlot struct {
	*storage.Memory
	getErr error
	setErr error
}

func (b *brokenSlot) Get(ctx context.Context, key string) (string, bool, error) {
	if b.getErr != nil {
		return "", false, b.getErr
	}
	return b.Memory.Get(ctx, key)
}

func (b *brokenSlot) Set(ctx context.Context, key, value string) error {
	if b.setErr != nil {
		return b.setErr
	}
	return b.Memory.Set(ctx, key, value)
}

func quietAdapter(slot storage.Slot) *Adapter {
	a := New(slot)
	a.SetLogger(log.New(io.Discard, "", 0))
	return a
}

func seed(t *testing.T, slot storage.Slot, raw string) {
	t.Helper()
	if err := slot.Set(context.Background(), SlotKey, raw); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := quietAdapter(storage.NewMemory())

	days := domain.DefaultItinerary()
	days[1].Activities[0].IsCompleted = true
	days[2].Activities[1].Notes = "帶相機"

	if err := a.Save(ctx, days); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok := a.Load(ctx)
	if !ok {
		t.Fatalf("expected data")
	}
	if !reflect.DeepEqual(loaded, days) {
		t.Fatalf("round trip changed itinerary")
	}
}

func TestSaveLoadRoundTripSQLite(t *testing.T) {
	ctx := context.Background()
	slot, err := storage.NewSQLite(filepath.Join(t.TempDir(), "trip.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer slot.Close()
	a := quietAdapter(slot)

	days := domain.DefaultItinerary()
	if err := a.Save(ctx, days); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok := a.Load(ctx)
	if !ok || !reflect.DeepEqual(loaded, days) {
		t.Fatalf("round trip through sqlite changed itinerary")
	}
}

func TestSaveWritesVersionTag(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()
	a := quietAdapter(slot)

	if err := a.Save(ctx, domain.DefaultItinerary()); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _, _ := slot.Get(ctx, SlotKey)
	if !strings.HasPrefix(raw, `{"version":2,`) {
		t.Fatalf("snapshot missing version tag: %.40s", raw)
	}
}

func TestSaveNormalizesNilActivities(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()
	a := quietAdapter(slot)

	days := domain.DefaultItinerary()
	days[0].Activities = nil
	if err := a.Save(ctx, days); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _, _ := slot.Get(ctx, SlotKey)
	if strings.Contains(raw, `"activities":null`) {
		t.Fatalf("nil activities written as null")
	}
}

func TestLoadEmptySlot(t *testing.T) {
	a := quietAdapter(storage.NewMemory())
	if _, ok := a.Load(context.Background()); ok {
		t.Fatalf("expected no data")
	}
}

func TestLoadLegacyArrayWithWeather(t *testing.T) {
	slot := storage.NewMemory()
	seed(t, slot, `[
		{"id":"day1","date":"2025-10-31","dayName":"10/31 (五)",
		 "weather":{"location":"福岡","temp":19,"condition":"晴","icon":"☀️","clothing":"薄外套"},
		 "activities":[{"id":"k3j2h1g0f","time":"10:00","title":"博多","location":"博多駅","category":"Transport","cost":260,"currency":"JPY","notes":"","isCompleted":false}]},
		{"id":"day2","date":"2025-11-01","dayName":"11/01 (六)",
		 "weather":{"location":"太宰府","temp":17,"condition":"晴","icon":"☀️","clothing":""},
		 "activities":[]}
	]`)

	days, ok := quietAdapter(slot).Load(context.Background())
	if !ok {
		t.Fatalf("expected legacy snapshot to migrate")
	}
	if len(days) != 2 || days[0].Activities[0].ID != "k3j2h1g0f" {
		t.Fatalf("unexpected migrated days: %+v", days)
	}
}

// snapshotWith builds a v2 snapshot whose first day holds the given
// activities and whose second day holds none.
func snapshotWith(activities ...string) string {
	return `{"version":2,"days":[
		{"id":"day1","date":"2025-10-31","weather":{},"activities":[` + strings.Join(activities, ",") + `]},
		{"id":"day2","date":"2025-11-01","weather":{},"activities":[]}]}`
}

func TestLoadAcceptsValidActivities(t *testing.T) {
	slot := storage.NewMemory()
	seed(t, slot, snapshotWith(
		`{"id":"x","time":"09:00","title":"早餐","category":"Food","cost":800,"currency":"JPY"}`,
		`{"id":"y","time":"23:59","title":"免稅","category":"Shopping","cost":0,"currency":"TWD"}`))

	days, ok := quietAdapter(slot).Load(context.Background())
	if !ok || len(days) != 2 || len(days[0].Activities) != 2 {
		t.Fatalf("expected valid snapshot to load, got ok=%v %+v", ok, days)
	}
}

func TestLoadRejectsUnusableSnapshots(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"blank", `   `},
		{"first day without weather", `[{"id":"day1","date":"2025-10-31","activities":[]}]`},
		{"null weather", `[{"id":"day1","date":"2025-10-31","weather":null,"activities":[]}]`},
		{"later day without weather", `{"version":2,"days":[
			{"id":"day1","date":"2025-10-31","weather":{"location":"福岡"},"activities":[]},
			{"id":"day2","date":"2025-11-01","activities":[]}]}`},
		{"legacy later day without weather", `[
			{"id":"day1","date":"2025-10-31","weather":{"location":"福岡"},"activities":[]},
			{"id":"day2","date":"2025-11-01","activities":[]}]`},
		{"future version", `{"version":3,"days":[{"id":"day1","date":"2025-10-31","weather":{},"activities":[]}]}`},
		{"missing version", `{"days":[{"id":"day1","date":"2025-10-31","weather":{},"activities":[]}]}`},
		{"no days", `{"version":2,"days":[]}`},
		{"bad date", `{"version":2,"days":[{"id":"day1","date":"31/10/2025","weather":{},"activities":[]}]}`},
		{"dates out of order", `{"version":2,"days":[
			{"id":"day1","date":"2025-11-01","weather":{},"activities":[]},
			{"id":"day2","date":"2025-10-31","weather":{},"activities":[]}]}`},
		{"duplicate activity ids", snapshotWith(
			`{"id":"x","time":"09:00","title":"a","category":"Food","currency":"JPY"}`,
			`{"id":"x","time":"10:00","title":"b","category":"Food","currency":"JPY"}`)},
		{"wrong types", `{"version":2,"days":[{"id":"day1","date":"2025-10-31","weather":{},"activities":[{"id":"x","cost":"cheap"}]}]}`},
		{"unpadded time", snapshotWith(
			`{"id":"x","time":"9:00","title":"早餐","category":"Food","currency":"JPY"}`)},
		{"negative cost", snapshotWith(
			`{"id":"x","time":"09:00","title":"早餐","category":"Food","cost":-100,"currency":"JPY"}`)},
		{"unknown category", snapshotWith(
			`{"id":"x","time":"09:00","title":"夜遊","category":"Bogus","currency":"JPY"}`)},
		{"blank title", snapshotWith(
			`{"id":"x","time":"09:00","title":"  ","category":"Food","currency":"JPY"}`)},
		{"unknown currency", snapshotWith(
			`{"id":"x","time":"09:00","title":"早餐","category":"Food","currency":"USD"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := storage.NewMemory()
			seed(t, slot, tt.raw)
			if days, ok := quietAdapter(slot).Load(context.Background()); ok {
				t.Fatalf("expected snapshot to be discarded, got %+v", days)
			}
		})
	}
}

func TestLoadReadErrorMeansNoData(t *testing.T) {
	slot := &brokenSlot{Memory: storage.NewMemory(), getErr: errors.New("disk gone")}
	if _, ok := quietAdapter(slot).Load(context.Background()); ok {
		t.Fatalf("expected no data on read error")
	}
}

func TestSaveReportsWriteError(t *testing.T) {
	slot := &brokenSlot{Memory: storage.NewMemory(), setErr: errors.New("quota exceeded")}
	err := quietAdapter(slot).Save(context.Background(), domain.DefaultItinerary())
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestStoreOpenFallsBackOnMalformedSnapshot(t *testing.T) {
	slot := storage.NewMemory()
	seed(t, slot, `[{"id":"old","date":"2025-10-31","activities":[{"id":"stale","time":"09:00"}]}]`)

	s := itinerary.Open(context.Background(), quietAdapter(slot))
	if _, _, ok := s.Find("stale"); ok {
		t.Fatalf("malformed snapshot was kept")
	}
	if !reflect.DeepEqual(s.Days(), domain.DefaultItinerary()) {
		t.Fatalf("expected default seed")
	}

	// The reseeded itinerary replaces the bad snapshot.
	raw, _, _ := slot.Get(context.Background(), SlotKey)
	if !strings.HasPrefix(raw, `{"version":2,`) {
		t.Fatalf("bad snapshot not overwritten")
	}
}

func TestStoreOpenReseedsOnInvalidActivity(t *testing.T) {
	slot := storage.NewMemory()
	seed(t, slot, snapshotWith(
		`{"id":"late","time":"10:00","title":"a","category":"Food","currency":"JPY"}`,
		`{"id":"early","time":"9:00","title":"b","category":"Bogus","currency":"JPY"}`))

	s := itinerary.Open(context.Background(), quietAdapter(slot))
	if _, _, ok := s.Find("early"); ok {
		t.Fatalf("invalid activity was loaded")
	}
	if !reflect.DeepEqual(s.Days(), domain.DefaultItinerary()) {
		t.Fatalf("expected default seed")
	}
}

func TestStoreMutationsPersist(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()
	a := quietAdapter(slot)

	s := itinerary.Open(ctx, a)
	_, added, _ := s.Find("d1-ramen")
	added.ID = "new-one"
	added.Title = "明太子早餐"
	added.Time = "08:00"
	if _, err := s.Upsert(ctx, 0, added); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	s.ToggleComplete(ctx, "d2-shrine")
	if err := s.Delete(ctx, 3, "d4-dutyfree"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	reopened := itinerary.Open(ctx, a)
	if !reflect.DeepEqual(reopened.Days(), s.Days()) {
		t.Fatalf("reopened itinerary differs from saved one")
	}
	if _, act, _ := reopened.Find("d2-shrine"); !act.IsCompleted {
		t.Fatalf("toggle not persisted")
	}
	if _, _, ok := reopened.Find("d4-dutyfree"); ok {
		t.Fatalf("delete not persisted")
	}
}
