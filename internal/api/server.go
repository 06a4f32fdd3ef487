package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pbaille/trip/internal/advisor"
	"github.com/pbaille/trip/internal/domain"
	"github.com/pbaille/trip/internal/itinerary"
	"github.com/pbaille/trip/internal/maplink"
	"github.com/pbaille/trip/internal/report"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// Server exposes the itinerary over a local JSON API.
// Store calls are serialized; tip requests run outside the lock.
type Server struct {
	mu      sync.Mutex
	store   *itinerary.Store
	advisor *advisor.Advisor
	limiter *rate.Limiter
	addr    string
}

// New creates an API server. tipsPerMinute <= 0 disables throttling.
func New(s *itinerary.Store, adv *advisor.Advisor, addr string, tipsPerMinute int) *Server {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if tipsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(tipsPerMinute)), tipsPerMinute)
	}
	return &Server{store: s, advisor: adv, limiter: limiter, addr: addr}
}

// Handler returns the routed handler with CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Days
	mux.HandleFunc("GET /days", s.listDays)
	mux.HandleFunc("GET /days/{day}/activities", s.dayActivities)
	mux.HandleFunc("POST /days/{day}/activities", s.upsertActivity)
	mux.HandleFunc("DELETE /days/{day}/activities/{id}", s.deleteActivity)

	// Activities
	mux.HandleFunc("GET /activities", s.allActivities)
	mux.HandleFunc("POST /activities/{id}/toggle", s.toggleActivity)
	mux.HandleFunc("GET /activities/{id}/tip", s.activityTip)
	mux.HandleFunc("GET /activities/{id}/map", s.activityMap)

	// Expenses
	mux.HandleFunc("GET /expenses", s.expenses)
	mux.HandleFunc("GET /expenses/analysis", s.expenseAnalysis)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// HTTPServer returns an http.Server bound to the configured address
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"tips":   s.advisor.Available(),
	})
}

// DaySummary is one entry of GET /days
type DaySummary struct {
	Index      int                 `json:"index"`
	ID         string              `json:"id"`
	Date       string              `json:"date"`
	DayName    string              `json:"dayName"`
	Weather    *domain.WeatherInfo `json:"weather"`
	Activities int                 `json:"activities"`
	Completed  int                 `json:"completed"`
}

func (s *Server) listDays(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	days := s.store.Days()
	s.mu.Unlock()

	out := make([]DaySummary, len(days))
	for i, d := range days {
		done := 0
		for _, a := range d.Activities {
			if a.IsCompleted {
				done++
			}
		}
		out[i] = DaySummary{
			Index:      i,
			ID:         d.ID,
			Date:       d.Date,
			DayName:    d.DayName,
			Weather:    d.Weather,
			Activities: len(d.Activities),
			Completed:  done,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"days": out})
}

func (s *Server) dayActivities(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	acts, err := s.store.ActivitiesSortedByTime(day)
	s.mu.Unlock()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if acts == nil {
		acts = []domain.Activity{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"day":        day,
		"activities": acts,
	})
}

func (s *Server) upsertActivity(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	var a domain.Activity
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	_, _, existed := s.store.Find(a.ID)
	stored, err := s.store.Upsert(r.Context(), day, a)
	s.mu.Unlock()
	if err != nil {
		writeStoreError(w, err)
		return
	}

	status := http.StatusCreated
	if existed && a.ID != "" {
		status = http.StatusOK
	}
	writeJSON(w, status, stored)
}

func (s *Server) deleteActivity(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	err := s.store.Delete(r.Context(), day, r.PathValue("id"))
	s.mu.Unlock()
	if err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) allActivities(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acts := s.store.AllActivities()
	s.mu.Unlock()
	if acts == nil {
		acts = []domain.Activity{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"activities": acts})
}

func (s *Server) toggleActivity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	found := s.store.ToggleComplete(r.Context(), id)
	_, a, _ := s.store.Find(id)
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "activity not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) lookup(id string) (domain.Activity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, a, ok := s.store.Find(id)
	return a, ok
}

func (s *Server) activityTip(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "activity not found")
		return
	}

	tip := advisor.FallbackError
	if s.limiter.Allow() {
		tip = s.advisor.GetTravelTip(r.Context(), a)
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": a.ID, "tip": tip})
}

func (s *Server) activityMap(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "activity not found")
		return
	}
	link := maplink.SearchURL(a.Location)

	if r.URL.Query().Get("format") == "png" {
		png, err := maplink.QRCode(link, 256)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": a.ID, "url": link})
}

func currencyParam(w http.ResponseWriter, r *http.Request) (domain.Currency, bool) {
	c := domain.Currency(strings.ToUpper(r.URL.Query().Get("currency")))
	if c == "" {
		return domain.JPY, true
	}
	for _, known := range domain.Currencies() {
		if c == known {
			return c, true
		}
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported currency: %s", c))
	return "", false
}

func (s *Server) expenses(w http.ResponseWriter, r *http.Request) {
	currency, ok := currencyParam(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	acts := s.store.AllActivities()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, report.Expenses(acts, currency))
}

func (s *Server) expenseAnalysis(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acts := s.store.AllActivities()
	s.mu.Unlock()

	b := report.Expenses(acts, domain.JPY)
	analysis := advisor.FallbackError
	if s.limiter.Allow() {
		analysis = s.advisor.AnalyzeExpenses(r.Context(), b.Total, acts)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":    b.Total,
		"analysis": analysis,
	})
}

func dayParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "day must be an integer")
		return 0, false
	}
	return day, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, itinerary.ErrDayOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, itinerary.ErrInvalidActivity):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, itinerary.ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("store error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Shutdown is a convenience for lifecycle hooks
func Shutdown(ctx context.Context, srv *http.Server) error {
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
