// Package advisor produces short travel tips from a text-generation
// provider. Every failure collapses into a fixed fallback string, so
// callers always get something displayable.
package advisor

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/pbaille/trip/internal/domain"
)

const (
	FallbackNoKey = "請設定 API Key 以獲取 AI 建議。"
	FallbackEmpty = "暫無建議。"
	FallbackError = "暫時無法獲取建議。"
)

const defaultTimeout = 15 * time.Second

// ErrNoCredential is returned by providers created without an API key
var ErrNoCredential = errors.New("api key not configured")

// Generator turns a prompt into text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Advisor asks a Generator for tips
type Advisor struct {
	gen     Generator
	city    string
	timeout time.Duration
	log     *log.Logger
}

// New creates an Advisor. gen may be nil, in which case every request
// answers FallbackNoKey.
func New(gen Generator, city string, timeout time.Duration) *Advisor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if city == "" {
		city = "日本福岡"
	}
	return &Advisor{
		gen:     gen,
		city:    city,
		timeout: timeout,
		log:     log.Default(),
	}
}

// SetLogger replaces the logger used for provider errors
func (a *Advisor) SetLogger(l *log.Logger) {
	a.log = l
}

// Available reports whether a provider is configured
func (a *Advisor) Available() bool {
	return a.gen != nil
}

// Close releases the provider's resources, if it holds any
func (a *Advisor) Close() error {
	if c, ok := a.gen.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// GetTravelTip returns a short suggestion for one activity
func (a *Advisor) GetTravelTip(ctx context.Context, act domain.Activity) string {
	return a.ask(ctx, buildTipPrompt(a.city, act))
}

// AnalyzeExpenses returns a short comment on the spending mix
func (a *Advisor) AnalyzeExpenses(ctx context.Context, total int, activities []domain.Activity) string {
	return a.ask(ctx, buildExpensePrompt(a.city, total, activities))
}

func (a *Advisor) ask(ctx context.Context, prompt string) string {
	if a.gen == nil {
		return FallbackNoKey
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, prompt)
	if errors.Is(err, ErrNoCredential) {
		return FallbackNoKey
	}
	if err != nil {
		a.log.Printf("tip request failed: %v", err)
		return FallbackError
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackEmpty
	}
	return text
}
