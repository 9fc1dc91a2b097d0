package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"cloudstream/internal/domain"
)

func TestParseIDResponse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"plain array", `["a", "b"]`, []string{"a", "b"}},
		{"code fence", "```json\n[\"a\"]\n```", []string{"a"}},
		{"prose wrapped", `The relevant files are ["v1", "v2"], as requested.`, []string{"v1", "v2"}},
		{"empty array", `[]`, []string{}},
		{"garbage", `no files match`, nil},
		{"empty", ``, nil},
		{"non-string array", `[1, 2]`, nil},
	}

	for _, tt := range tests {
		got := ParseIDResponse(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: ParseIDResponse(%q) = %#v, want %#v", tt.name, tt.text, got, tt.want)
		}
	}
}

func TestRefineWithoutKey(t *testing.T) {
	c := NewClient("", "", nil)

	_, err := c.Refine(context.Background(), "q", []domain.FileRecord{{ID: "a"}})
	if !errors.Is(err, domain.ErrRefinementUnavailable) {
		t.Errorf("Refine without key = %v, want ErrRefinementUnavailable", err)
	}
}

func TestRefineNoCandidates(t *testing.T) {
	c := NewClient("key", "", nil)

	ids, err := c.Refine(context.Background(), "q", nil)
	if err != nil || ids != nil {
		t.Errorf("Refine with no candidates = %v, %v; want nil, nil", ids, err)
	}
}

func TestRefineParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[\"v2\"]"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("key", "test-model", nil)
	c.endpoint = srv.URL

	ids, err := c.Refine(context.Background(), "holiday", []domain.FileRecord{
		{ID: "v1", Name: "work.mp4"},
		{ID: "v2", Name: "holiday.mp4"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"v2"}) {
		t.Errorf("ids = %v, want [v2]", ids)
	}
}

func TestRefineServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("key", "", nil)
	c.endpoint = srv.URL

	_, err := c.Refine(context.Background(), "q", []domain.FileRecord{{ID: "a"}})
	if !errors.Is(err, domain.ErrRefinementUnavailable) {
		t.Errorf("Refine on 429 = %v, want ErrRefinementUnavailable", err)
	}
}
