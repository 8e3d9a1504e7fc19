package estimator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/avdeev87/fitcoach/internal/errs"
)

const offDefaultBaseURL = "https://world.openfoodfacts.org"

// OpenFoodFacts resolves barcodes against the Open Food Facts database.
// Transient failures (network, 5xx) are retried with exponential backoff
// before surfacing as errs.ErrUnavailable.
type OpenFoodFacts struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

var _ BarcodeLookup = (*OpenFoodFacts)(nil)

// Lookup fetches the product for a barcode and normalizes its nutrition
// to per-100g values. Unknown barcodes return errs.ErrNotFound.
func (c *OpenFoodFacts) Lookup(ctx context.Context, barcode string) (Per100g, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = offDefaultBaseURL
	}
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 12 * time.Second}
	}
	url := fmt.Sprintf("%s/api/v2/product/%s.json", base, barcode)

	var body []byte
	backoff := retry.WithMaxRetries(2, retry.NewExponential(300*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}
		resp, err := client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("openfoodfacts status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("openfoodfacts status %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		return Per100g{}, fmt.Errorf("openfoodfacts lookup: %w: %w", errs.ErrUnavailable, err)
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Per100g{}, fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	if parsed.Status != 1 || strings.TrimSpace(parsed.Product.ProductName) == "" {
		return Per100g{}, fmt.Errorf("barcode %q: %w", barcode, errs.ErrNotFound)
	}

	return Per100g{
		Name:         strings.TrimSpace(parsed.Product.ProductName),
		Brand:        strings.TrimSpace(parsed.Product.Brands),
		Calories:     nutrient100g(parsed.Product.Nutriments, "energy-kcal"),
		Protein:      nutrient100g(parsed.Product.Nutriments, "proteins"),
		Fat:          nutrient100g(parsed.Product.Nutriments, "fat"),
		Carbs:        nutrient100g(parsed.Product.Nutriments, "carbohydrates"),
		PackageGrams: packageGrams(parsed.Product),
	}, nil
}

func nutrient100g(n map[string]any, base string) float64 {
	if v, ok := parseFloatAny(n[base+"_100g"]); ok {
		return v
	}
	return 0
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// packageGrams extracts the net weight when the product declares one in
// grams; anything else (pieces, ml, missing) reads as unknown. The API
// serves product_quantity as either a number or a string.
func packageGrams(p offProduct) float64 {
	q, ok := parseFloatAny(p.ProductQuantity)
	if ok && q > 0 && (p.ProductQuantityUnit == "" || p.ProductQuantityUnit == "g") {
		return q
	}
	return 0
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	ProductName         string         `json:"product_name"`
	Brands              string         `json:"brands"`
	ProductQuantity     any            `json:"product_quantity"`
	ProductQuantityUnit string         `json:"product_quantity_unit"`
	Nutriments          map[string]any `json:"nutriments"`
}
