package estimator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/avdeev87/fitcoach/internal/errs"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	ts := httptest.NewServer(handler)
	c := NewClient(ts.URL, "test-key", zap.NewNop())
	c.http = ts.Client()
	return c, ts.Close
}

func TestClient_Estimate(t *testing.T) {
	t.Parallel()

	c, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/meals/estimate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing auth header, got %q", got)
		}
		var in struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Text != "chicken with rice" {
			t.Errorf("unexpected text %q", in.Text)
		}
		_, _ = w.Write([]byte(`{"products":[
			{"name":"chicken breast","grams":200,"calories":330,"protein":62,"fat":7.2,"carbs":0},
			{"name":"rice","grams":150,"calories":195,"protein":4,"fat":0.5,"carbs":42}
		]}`))
	})
	defer done()

	items, err := c.Estimate(context.Background(), "chicken with rice")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if len(items) != 2 || items[0].Name != "chicken breast" || items[0].Calories != 330 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestClient_Estimate_ServerDown(t *testing.T) {
	t.Parallel()

	c, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer done()

	if _, err := c.Estimate(context.Background(), "soup"); !errors.Is(err, errs.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestClient_Scan(t *testing.T) {
	t.Parallel()

	c, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"barcode":"4600000000001"}`))
	})
	defer done()

	code, err := c.Scan(context.Background(), []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if code != "4600000000001" {
		t.Fatalf("unexpected barcode %q", code)
	}
}

func TestClient_Scan_NoBarcode(t *testing.T) {
	t.Parallel()

	c, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"barcode":""}`))
	})
	defer done()

	if _, err := c.Scan(context.Background(), []byte{1}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound when photo has no barcode, got %v", err)
	}
}

func TestClient_ReadLabel(t *testing.T) {
	t.Parallel()

	c, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"cottage cheese","calories_100g":121,"protein_100g":17,"fat_100g":5,"carbs_100g":3,"package_grams":200}`))
	})
	defer done()

	p, err := c.ReadLabel(context.Background(), []byte{1})
	if err != nil {
		t.Fatalf("ReadLabel: %v", err)
	}
	if p.Calories != 121 || p.PackageGrams != 200 {
		t.Fatalf("unexpected label: %+v", p)
	}
}

func TestClient_Translate_FallsBackToOriginal(t *testing.T) {
	t.Parallel()

	c, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer done()

	// Translation is best effort: failures hand the original back.
	if got := c.Translate(context.Background(), "курица", "ru", "en"); got != "курица" {
		t.Fatalf("want original text on failure, got %q", got)
	}
}

func TestClient_Translate(t *testing.T) {
	t.Parallel()

	c, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"chicken"}`))
	})
	defer done()

	if got := c.Translate(context.Background(), "курица", "ru", "en"); got != "chicken" {
		t.Fatalf("want translated text, got %q", got)
	}
}

func TestClient_Summarize(t *testing.T) {
	t.Parallel()

	c, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"summary":"a solid week"}`))
	})
	defer done()

	out, err := c.Summarize(context.Background(), "Report ...")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if out != "a solid week" {
		t.Fatalf("unexpected summary %q", out)
	}
}
