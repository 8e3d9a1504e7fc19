package estimator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/avdeev87/fitcoach/internal/errs"
)

func TestOpenFoodFacts_Lookup(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/product/4600000000001.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "product_name": "Oat Cookies",
    "brands": "Brand Co",
    "product_quantity": "300",
    "product_quantity_unit": "g",
    "nutriments": {
      "energy-kcal_100g": 430,
      "proteins_100g": 7.5,
      "carbohydrates_100g": 65,
      "fat_100g": 15
    }
  }
}`))
	}))
	defer ts.Close()

	c := &OpenFoodFacts{BaseURL: ts.URL, HTTPClient: ts.Client()}
	p, err := c.Lookup(context.Background(), "4600000000001")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.Name != "Oat Cookies" || p.Brand != "Brand Co" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.Calories != 430 || p.Protein != 7.5 || p.Carbs != 65 || p.Fat != 15 {
		t.Fatalf("per-100g values wrong: %+v", p)
	}
	if p.PackageGrams != 300 {
		t.Fatalf("package grams want 300, got %v", p.PackageGrams)
	}
}

func TestOpenFoodFacts_Lookup_UnknownBarcode(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": 0, "product": {}}`))
	}))
	defer ts.Close()

	c := &OpenFoodFacts{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.Lookup(context.Background(), "000"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown barcode, got %v", err)
	}
}

func TestOpenFoodFacts_Lookup_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"status": 1, "product": {"product_name": "Milk", "nutriments": {"energy-kcal_100g": 64}}}`))
	}))
	defer ts.Close()

	c := &OpenFoodFacts{BaseURL: ts.URL, HTTPClient: ts.Client()}
	p, err := c.Lookup(context.Background(), "1")
	if err != nil {
		t.Fatalf("Lookup after retry: %v", err)
	}
	if p.Name != "Milk" || calls.Load() != 2 {
		t.Fatalf("retry not applied: p=%+v calls=%d", p, calls.Load())
	}
}

func TestOpenFoodFacts_Lookup_GivesUpAsUnavailable(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := &OpenFoodFacts{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.Lookup(context.Background(), "1"); !errors.Is(err, errs.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable after retries, got %v", err)
	}
}
