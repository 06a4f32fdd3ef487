package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pbaille/trip/internal/domain"
)

type fakeGenerator struct {
	text   string
	err    error
	block  bool
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

func quiet(a *Advisor) *Advisor {
	a.SetLogger(log.New(io.Discard, "", 0))
	return a
}

var ramen = domain.Activity{
	ID:       "d1-ramen",
	Time:     "13:00",
	Title:    "一蘭拉麵總本店",
	Location: "一蘭 本社総本店",
	Category: domain.Food,
	Cost:     1180,
	Currency: domain.JPY,
}

func TestGetTravelTipReturnsTrimmedText(t *testing.T) {
	gen := &fakeGenerator{text: "  必點半熟蛋，湯頭選濃郁。\n"}
	a := quiet(New(gen, "", time.Second))

	got := a.GetTravelTip(context.Background(), ramen)
	if got != "必點半熟蛋，湯頭選濃郁。" {
		t.Fatalf("unexpected tip %q", got)
	}
	if !strings.Contains(gen.prompt, "一蘭拉麵總本店") || !strings.Contains(gen.prompt, "13:00") {
		t.Fatalf("prompt missing activity details: %s", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "推薦必點菜色") {
		t.Fatalf("food prompt should ask for a dish")
	}
	if !strings.Contains(gen.prompt, "日本福岡") {
		t.Fatalf("prompt missing default city")
	}
}

func TestFallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
		want string
	}{
		{"no provider", nil, FallbackNoKey},
		{"credential error", &fakeGenerator{err: ErrNoCredential}, FallbackNoKey},
		{"provider error", &fakeGenerator{err: errors.New("503")}, FallbackError},
		{"empty text", &fakeGenerator{text: "   "}, FallbackEmpty},
		{"timeout", &fakeGenerator{block: true}, FallbackError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := quiet(New(tt.gen, "", 20*time.Millisecond))
			if got := a.GetTravelTip(context.Background(), ramen); got != tt.want {
				t.Fatalf("tip: want %q, got %q", tt.want, got)
			}
			if got := a.AnalyzeExpenses(context.Background(), 1180, []domain.Activity{ramen}); got != tt.want {
				t.Fatalf("expenses: want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAnalyzeExpensesPrompt(t *testing.T) {
	gen := &fakeGenerator{text: "美食佔比最高。"}
	a := quiet(New(gen, "福岡", time.Second))

	acts := []domain.Activity{
		ramen,
		{Title: "地鐵", Category: domain.Transport, Cost: 260, Currency: domain.JPY},
		{Title: "免稅店", Category: domain.Shopping, Cost: 1500, Currency: domain.TWD},
	}
	if got := a.AnalyzeExpenses(context.Background(), 1440, acts); got != "美食佔比最高。" {
		t.Fatalf("unexpected analysis %q", got)
	}
	if !strings.Contains(gen.prompt, "¥1440") {
		t.Fatalf("prompt missing total: %s", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "美食：¥1180") || !strings.Contains(gen.prompt, "交通：¥260") {
		t.Fatalf("prompt missing category totals: %s", gen.prompt)
	}
	if strings.Contains(gen.prompt, "免稅店") {
		t.Fatalf("TWD spending leaked into JPY analysis")
	}
}

func TestSightseeingPromptAsksForPhotoAngle(t *testing.T) {
	p := buildTipPrompt("福岡", domain.Activity{Title: "太宰府天滿宮", Time: "10:00", Category: domain.Sightseeing})
	if !strings.Contains(p, "拍照角度") {
		t.Fatalf("sightseeing prompt should ask for a photo angle: %s", p)
	}
	if strings.Contains(p, "地點：") {
		t.Fatalf("empty location should be left out")
	}
}

func TestAnthropicGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var req apiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"早點去排隊。"}]}`))
	}))
	defer srv.Close()

	c, err := NewAnthropic("test-key", "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c.endpoint = srv.URL

	tip := quiet(New(c, "", time.Second)).GetTravelTip(context.Background(), ramen)
	if tip != "早點去排隊。" {
		t.Fatalf("unexpected tip %q", tip)
	}
}

func TestAnthropicErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := NewAnthropic("test-key", "")
	c.endpoint = srv.URL

	if _, err := c.Generate(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error for 503")
	}
	if tip := quiet(New(c, "", time.Second)).GetTravelTip(context.Background(), ramen); tip != FallbackError {
		t.Fatalf("expected fallback, got %q", tip)
	}
}

func TestOpenAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"帶零錢。"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c, err := NewOpenAI("test-key", "", srv.URL+"/v1")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, err := c.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "帶零錢。" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestNewGeneratorMissingKeys(t *testing.T) {
	for _, p := range []string{"", "gemini", "anthropic", "openai", "OpenAI"} {
		_, err := NewGenerator(context.Background(), ProviderConfig{Provider: p})
		if !errors.Is(err, ErrNoCredential) {
			t.Fatalf("provider %q: expected ErrNoCredential, got %v", p, err)
		}
	}
}

func TestNewGeneratorUnknownProvider(t *testing.T) {
	_, err := NewGenerator(context.Background(), ProviderConfig{Provider: "llama"})
	if err == nil || errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected unsupported provider error, got %v", err)
	}
}

func TestFromConfigWithoutKey(t *testing.T) {
	a, err := FromConfig(context.Background(), ProviderConfig{Provider: "anthropic"}, "", 0)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	if a.Available() {
		t.Fatalf("advisor without key should not be available")
	}
	if got := a.GetTravelTip(context.Background(), ramen); got != FallbackNoKey {
		t.Fatalf("expected no-key fallback, got %q", got)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
