package domain

// Category classifies an activity
type Category string

const (
	Transport     Category = "Transport"
	Sightseeing   Category = "Sightseeing"
	Food          Category = "Food"
	Shopping      Category = "Shopping"
	Accommodation Category = "Accommodation"
	Flexible      Category = "Flexible"
)

var categoryLabels = map[Category]string{
	Transport:     "交通",
	Food:          "美食",
	Sightseeing:   "景點",
	Shopping:      "購物",
	Accommodation: "住宿",
	Flexible:      "彈性",
}

// Categories returns every category in display order
func Categories() []Category {
	return []Category{Transport, Sightseeing, Food, Shopping, Accommodation, Flexible}
}

// Label returns the display label, or the raw name for unknown values
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Currency tags the unit of an activity's cost
type Currency string

const (
	JPY Currency = "JPY"
	TWD Currency = "TWD"
)

// Currencies returns the supported currencies
func Currencies() []Currency {
	return []Currency{JPY, TWD}
}

// Activity is one scheduled event within a day
type Activity struct {
	ID          string   `json:"id"`
	Time        string   `json:"time"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Category    Category `json:"category"`
	Cost        int      `json:"cost"`
	Currency    Currency `json:"currency"`
	Notes       string   `json:"notes"`
	IsCompleted bool     `json:"isCompleted"`
}

// WeatherInfo is a preset weather snapshot for one day
type WeatherInfo struct {
	Location  string `json:"location"`
	Temp      int    `json:"temp"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
	Clothing  string `json:"clothing"`
}

// DaySchedule is one calendar day of the trip.
// Weather is a pointer so that snapshots missing it can be told apart.
type DaySchedule struct {
	ID         string       `json:"id"`
	Date       string       `json:"date"`
	DayName    string       `json:"dayName"`
	Weather    *WeatherInfo `json:"weather"`
	Activities []Activity   `json:"activities"`
}

// Clone returns a deep copy of the day
func (d DaySchedule) Clone() DaySchedule {
	out := d
	if d.Weather != nil {
		w := *d.Weather
		out.Weather = &w
	}
	out.Activities = make([]Activity, len(d.Activities))
	copy(out.Activities, d.Activities)
	return out
}

// CloneDays deep-copies a day sequence
func CloneDays(days []DaySchedule) []DaySchedule {
	out := make([]DaySchedule, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}
