package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/estimator"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// PortionUpdate names a product from an existing meal with its new weight.
type PortionUpdate struct {
	Name  string
	Grams float64
}

// MealService logs meals through the pluggable estimators and keeps the
// four totals equal to the sum of the line items at every save.
type MealService interface {
	// AddFromText recognizes products from a free-text description
	// (translated to the estimator's language first) and saves the meal.
	AddFromText(ctx context.Context, userID model.UserID, text string, date time.Time) (*model.MealEntry, error)
	// AddFromPhoto recognizes products from a meal photo and saves the meal.
	AddFromPhoto(ctx context.Context, userID model.UserID, image []byte, date time.Time) (*model.MealEntry, error)
	// AddFromPer100g saves a meal of one product scaled from per-100g
	// nutrition to the given weight (label or barcode paths).
	AddFromPer100g(ctx context.Context, userID model.UserID, p estimator.Per100g, grams float64, date time.Time) (*model.MealEntry, error)
	// ResolveBarcode scans the photo and looks the barcode up.
	ResolveBarcode(ctx context.Context, image []byte) (estimator.Per100g, error)
	// ReadLabel reads per-100g nutrition from a label photo.
	ReadLabel(ctx context.Context, image []byte) (estimator.Per100g, error)
	// EditPortions rescales existing line items to new weights and
	// recomputes all four totals from scratch.
	EditPortions(ctx context.Context, userID model.UserID, id uuid.UUID, updates []PortionUpdate) (*model.MealEntry, error)
	// Delete removes a meal.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// TotalsForDay sums the day's meals.
	TotalsForDay(ctx context.Context, userID model.UserID, date time.Time) (model.DayTotals, error)
}

type MealServiceImpl struct {
	meals      repository.MealRepository
	nutrition  estimator.Nutrition
	photo      estimator.Photo
	label      estimator.Label
	scanner    estimator.BarcodeScanner
	barcodes   estimator.BarcodeLookup
	translator estimator.Translator
	userLang   string
	lookupLang string
}

// NewMealService constructs MealService. userLang/lookupLang configure
// the translation applied before text lookups (e.g. "ru" -> "en").
func NewMealService(
	meals repository.MealRepository,
	nutrition estimator.Nutrition,
	photo estimator.Photo,
	label estimator.Label,
	scanner estimator.BarcodeScanner,
	barcodes estimator.BarcodeLookup,
	translator estimator.Translator,
	userLang, lookupLang string,
) *MealServiceImpl {
	return &MealServiceImpl{
		meals:      meals,
		nutrition:  nutrition,
		photo:      photo,
		label:      label,
		scanner:    scanner,
		barcodes:   barcodes,
		translator: translator,
		userLang:   userLang,
		lookupLang: lookupLang,
	}
}

// AddFromText translates the description (best effort) and saves
// whatever the estimator recognizes. Estimator failures surface as
// errs.ErrUnavailable so the flow can offer a retry.
func (s *MealServiceImpl) AddFromText(ctx context.Context, userID model.UserID, text string, date time.Time) (*model.MealEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("validation: empty meal description")
	}
	lookup := s.translator.Translate(ctx, text, s.userLang, s.lookupLang)
	items, err := s.nutrition.Estimate(ctx, lookup)
	if err != nil {
		return nil, fmt.Errorf("nutrition estimate: %w", errs.ErrUnavailable)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("nutrition estimate: %w", errs.ErrNotFound)
	}
	return s.save(ctx, userID, text, toProducts(items), date)
}

// AddFromPhoto saves a meal recognized from a photo.
func (s *MealServiceImpl) AddFromPhoto(ctx context.Context, userID model.UserID, image []byte, date time.Time) (*model.MealEntry, error) {
	if len(image) == 0 {
		return nil, errors.New("validation: empty image")
	}
	items, err := s.photo.EstimatePhoto(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("photo estimate: %w", errs.ErrUnavailable)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("photo estimate: %w", errs.ErrNotFound)
	}
	return s.save(ctx, userID, "", toProducts(items), date)
}

// AddFromPer100g scales one product and saves it as a meal.
func (s *MealServiceImpl) AddFromPer100g(ctx context.Context, userID model.UserID, p estimator.Per100g, grams float64, date time.Time) (*model.MealEntry, error) {
	if grams <= 0 {
		return nil, errors.New("validation: grams must be positive")
	}
	name := p.Name
	if p.Brand != "" {
		name = p.Brand + " " + p.Name
	}
	ratio := grams / 100
	product := model.Product{
		Name:     name,
		Grams:    grams,
		Calories: p.Calories * ratio,
		Protein:  p.Protein * ratio,
		Fat:      p.Fat * ratio,
		Carbs:    p.Carbs * ratio,
	}
	return s.save(ctx, userID, name, []model.Product{product}, date)
}

// ResolveBarcode scans the image and resolves the product.
func (s *MealServiceImpl) ResolveBarcode(ctx context.Context, image []byte) (estimator.Per100g, error) {
	code, err := s.scanner.Scan(ctx, image)
	if err != nil {
		return estimator.Per100g{}, fmt.Errorf("barcode scan: %w", errs.ErrUnavailable)
	}
	p, err := s.barcodes.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return estimator.Per100g{}, err
		}
		return estimator.Per100g{}, fmt.Errorf("barcode lookup: %w", errs.ErrUnavailable)
	}
	return p, nil
}

// ReadLabel reads per-100g nutrition from a label photo.
func (s *MealServiceImpl) ReadLabel(ctx context.Context, image []byte) (estimator.Per100g, error) {
	p, err := s.label.ReadLabel(ctx, image)
	if err != nil {
		return estimator.Per100g{}, fmt.Errorf("label ocr: %w", errs.ErrUnavailable)
	}
	return p, nil
}

// EditPortions rescales the named line items from their own per-100g
// ratios and recomputes the totals from scratch; the old totals are
// discarded, never adjusted incrementally.
func (s *MealServiceImpl) EditPortions(ctx context.Context, userID model.UserID, id uuid.UUID, updates []PortionUpdate) (*model.MealEntry, error) {
	if len(updates) == 0 {
		return nil, errors.New("validation: no portions given")
	}
	meal, err := s.meals.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]model.Product, len(meal.Products))
	for _, p := range meal.Products {
		byName[strings.ToLower(p.Name)] = p
	}

	products := make([]model.Product, 0, len(updates))
	for _, u := range updates {
		old, ok := byName[strings.ToLower(u.Name)]
		if !ok {
			return nil, fmt.Errorf("validation: meal has no product %q", u.Name)
		}
		if u.Grams <= 0 {
			return nil, fmt.Errorf("validation: grams for %q must be positive", u.Name)
		}
		products = append(products, scaleProduct(old, u.Grams))
	}

	meal.Products = products
	meal.Calories, meal.Protein, meal.Fat, meal.Carbs = model.SumProducts(products)
	if err := s.meals.Replace(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// Delete removes a meal.
func (s *MealServiceImpl) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return s.meals.Delete(ctx, userID, id)
}

// TotalsForDay sums the day's meals.
func (s *MealServiceImpl) TotalsForDay(ctx context.Context, userID model.UserID, date time.Time) (model.DayTotals, error) {
	meals, err := s.meals.GetForDate(ctx, userID, date)
	if err != nil {
		return model.DayTotals{}, err
	}
	var t model.DayTotals
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Fat += m.Fat
		t.Carbs += m.Carbs
	}
	return t, nil
}

func (s *MealServiceImpl) save(ctx context.Context, userID model.UserID, raw string, products []model.Product, date time.Time) (*model.MealEntry, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.MealEntry{
		ID:       id,
		UserID:   userID,
		Date:     date,
		RawText:  raw,
		Products: products,
	}
	e.Calories, e.Protein, e.Fat, e.Carbs = model.SumProducts(products)
	if err := s.meals.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// scaleProduct rescales a line item to new grams using its own
// per-100g ratios.
func scaleProduct(p model.Product, grams float64) model.Product {
	if p.Grams <= 0 {
		p.Grams = grams
		return p
	}
	ratio := grams / p.Grams
	return model.Product{
		Name:     p.Name,
		Grams:    grams,
		Calories: p.Calories * ratio,
		Protein:  p.Protein * ratio,
		Fat:      p.Fat * ratio,
		Carbs:    p.Carbs * ratio,
	}
}

func toProducts(items []estimator.ProductEstimate) []model.Product {
	out := make([]model.Product, 0, len(items))
	for _, it := range items {
		out = append(out, model.Product{
			Name:     it.Name,
			Grams:    it.Grams,
			Calories: it.Calories,
			Protein:  it.Protein,
			Fat:      it.Fat,
			Carbs:    it.Carbs,
		})
	}
	return out
}
