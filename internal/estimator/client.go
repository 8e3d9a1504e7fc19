package estimator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/avdeev87/fitcoach/internal/errs"
)

// Client talks to the recognition backend over JSON. One backend serves
// text and photo meal estimation, label OCR, barcode extraction,
// translation and report summaries.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

var (
	_ Nutrition      = (*Client)(nil)
	_ Photo          = (*Client)(nil)
	_ Label          = (*Client)(nil)
	_ BarcodeScanner = (*Client)(nil)
	_ Translator     = (*Client)(nil)
	_ Summarizer     = (*Client)(nil)
)

// NewClient constructs a recognition client.
func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

type productPayload struct {
	Name     string  `json:"name"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

type estimateResponse struct {
	Products []productPayload `json:"products"`
}

// Estimate recognizes products in a free-text meal description.
func (c *Client) Estimate(ctx context.Context, description string) ([]ProductEstimate, error) {
	var out estimateResponse
	err := c.post(ctx, "/v1/meals/estimate", map[string]string{"text": description}, &out)
	if err != nil {
		return nil, err
	}
	return toEstimates(out.Products), nil
}

// EstimatePhoto recognizes products on a meal photo.
func (c *Client) EstimatePhoto(ctx context.Context, image []byte) ([]ProductEstimate, error) {
	var out estimateResponse
	body := map[string]string{"image": base64.StdEncoding.EncodeToString(image)}
	if err := c.post(ctx, "/v1/meals/estimate-photo", body, &out); err != nil {
		return nil, err
	}
	return toEstimates(out.Products), nil
}

// ReadLabel reads per-100g nutrition facts from a label photo.
func (c *Client) ReadLabel(ctx context.Context, image []byte) (Per100g, error) {
	var out struct {
		Name         string  `json:"name"`
		Brand        string  `json:"brand"`
		Calories     float64 `json:"calories_100g"`
		Protein      float64 `json:"protein_100g"`
		Fat          float64 `json:"fat_100g"`
		Carbs        float64 `json:"carbs_100g"`
		PackageGrams float64 `json:"package_grams"`
	}
	body := map[string]string{"image": base64.StdEncoding.EncodeToString(image)}
	if err := c.post(ctx, "/v1/labels/read", body, &out); err != nil {
		return Per100g{}, err
	}
	return Per100g{
		Name:         out.Name,
		Brand:        out.Brand,
		Calories:     out.Calories,
		Protein:      out.Protein,
		Fat:          out.Fat,
		Carbs:        out.Carbs,
		PackageGrams: out.PackageGrams,
	}, nil
}

// Scan extracts a barcode string from a photo.
func (c *Client) Scan(ctx context.Context, image []byte) (string, error) {
	var out struct {
		Barcode string `json:"barcode"`
	}
	body := map[string]string{"image": base64.StdEncoding.EncodeToString(image)}
	if err := c.post(ctx, "/v1/barcodes/scan", body, &out); err != nil {
		return "", err
	}
	if out.Barcode == "" {
		return "", fmt.Errorf("no barcode on photo: %w", errs.ErrNotFound)
	}
	return out.Barcode, nil
}

// Translate translates text best effort; the original comes back on any
// failure so lookups degrade instead of breaking.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) string {
	var out struct {
		Text string `json:"text"`
	}
	body := map[string]string{"text": text, "source": sourceLang, "target": targetLang}
	if err := c.post(ctx, "/v1/translate", body, &out); err != nil {
		c.log.Debug("translation failed, using original text", zap.Error(err))
		return text
	}
	if out.Text == "" {
		return text
	}
	return out.Text
}

// Summarize turns a structured period report into narrative text.
func (c *Client) Summarize(ctx context.Context, report string) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.post(ctx, "/v1/reports/summarize", map[string]string{"report": report}, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// post sends one JSON request, retrying transient failures, and decodes
// the response into v. Errors carry errs.ErrUnavailable.
func (c *Client) post(ctx context.Context, path string, body any, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	var raw []byte
	backoff := retry.WithMaxRetries(2, retry.NewExponential(300*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("recognition %s: %w: %w", path, errs.ErrUnavailable, err)
	}
	return json.Unmarshal(raw, v)
}

func toEstimates(in []productPayload) []ProductEstimate {
	out := make([]ProductEstimate, 0, len(in))
	for _, p := range in {
		out = append(out, ProductEstimate{
			Name:     p.Name,
			Grams:    p.Grams,
			Calories: p.Calories,
			Protein:  p.Protein,
			Fat:      p.Fat,
			Carbs:    p.Carbs,
		})
	}
	return out
}
