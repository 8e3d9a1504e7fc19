// Package estimator defines the external-collaborator contracts for
// nutrition lookup, OCR, barcode resolution, translation and narrative
// summaries, plus HTTP-backed implementations. Collaborator failures
// never crash a flow: callers receive errs.ErrUnavailable (or, for
// translation, the original text) and recover locally.
package estimator

import "context"

// ProductEstimate is one recognized food item with absolute nutrition
// for the estimated portion.
type ProductEstimate struct {
	Name     string
	Grams    float64
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}

// Per100g is nutrition normalized per 100 g, as read from a label or a
// barcode database. PackageGrams is zero when the package weight is unknown.
type Per100g struct {
	Name         string
	Brand        string
	Calories     float64
	Protein      float64
	Fat          float64
	Carbs        float64
	PackageGrams float64
}

// Nutrition estimates nutrition from a free-text meal description.
type Nutrition interface {
	Estimate(ctx context.Context, description string) ([]ProductEstimate, error)
}

// Photo estimates nutrition from a meal photo.
type Photo interface {
	EstimatePhoto(ctx context.Context, image []byte) ([]ProductEstimate, error)
}

// Label reads a nutrition-facts label from a photo.
type Label interface {
	ReadLabel(ctx context.Context, image []byte) (Per100g, error)
}

// BarcodeScanner extracts a barcode string from a photo.
type BarcodeScanner interface {
	Scan(ctx context.Context, image []byte) (string, error)
}

// BarcodeLookup resolves a barcode to a product.
type BarcodeLookup interface {
	Lookup(ctx context.Context, barcode string) (Per100g, error)
}

// Translator translates text between languages. Implementations MUST
// return the original text unchanged on any failure; translation is
// best-effort and never propagates errors into flows.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) string
}

// Summarizer turns a structured period report into narrative text.
type Summarizer interface {
	Summarize(ctx context.Context, report string) (string, error)
}
