package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
)

func sampleDraft() article.Draft {
	return article.Draft{
		Topic:    "Cheese Heist at City Hall",
		Category: "crime",
		Type:     article.TypeBreaking,
		Qualities: article.Qualities{
			Investigation: article.InvestigationQualities{Background: 10, Original: 50, FactCheck: 40},
		},
	}
}

func TestGenerateArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/articles/generate" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("company_name"); got != "Rat News Network" {
			t.Errorf("Expected company_name query param, got %q", got)
		}
		if got := r.URL.Query().Get("slider_score"); got != "0.5" {
			t.Errorf("Expected slider_score=0.5, got %q", got)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Bad request body: %v", err)
		}
		if req.Topic != "Cheese Heist at City Hall" || req.Type != "breaking" {
			t.Errorf("Draft fields missing from request: %+v", req)
		}
		if req.Category == nil || *req.Category != "crime" {
			t.Errorf("Expected category forwarded, got %v", req.Category)
		}

		json.NewEncoder(w).Encode(GenerateResponse{
			Topic:   req.Topic,
			Type:    req.Type,
			Article: &ArticleJSON{Dek: "A daring dek", Body: "Full body text."},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	resp, err := client.GenerateArticle(context.Background(), sampleDraft(), "Rat News Network", 0.5)
	if err != nil {
		t.Fatalf("GenerateArticle failed: %v", err)
	}
	if resp.Article == nil || resp.Article.Dek != "A daring dek" {
		t.Errorf("Expected generated article in response, got %+v", resp)
	}
}

func TestGenerateRequiresArticleInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateResponse{Topic: "empty"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.Generate(context.Background(), sampleDraft(), "Rat News Network", 0.5); err == nil {
		t.Error("Expected an error when the response carries no article")
	}
}

func TestGenerateSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.GenerateArticle(context.Background(), sampleDraft(), "Rat News Network", 0.5); err == nil {
		t.Error("Expected an error on a non-200 response")
	}
}

func TestRateHeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/headlines/rate" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var req HeadlineRateIn
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Bad request body: %v", err)
		}
		if req.Headline == "" || req.ArticleType != "listicle" {
			t.Errorf("Expected headline and article type, got %+v", req)
		}
		json.NewEncoder(w).Encode(HeadlineRateOut{
			Type:    req.ArticleType,
			Overall: 0.73,
			Tips:    []string{"Shorter is punchier"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	out, err := client.RateHeadline(context.Background(), "Ten Crumbs You Won't Believe Exist", "listicle")
	if err != nil {
		t.Fatalf("RateHeadline failed: %v", err)
	}
	if out.Overall != 0.73 || len(out.Tips) != 1 {
		t.Errorf("Expected rating round trip, got %+v", out)
	}
}

func TestGenerateTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(server.URL, 50*time.Millisecond)
	if _, err := client.GenerateArticle(context.Background(), sampleDraft(), "Rat News Network", 0.5); err == nil {
		t.Error("Expected a timeout error from a stalled service")
	}
}
