package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/estimator"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

type fakeMealRepo struct {
	created  []model.MealEntry
	byID     *model.MealEntry
	forDate  []model.MealEntry
	rangeOut []model.MealEntry
	replaced *model.MealEntry
}

var _ repository.MealRepository = (*fakeMealRepo)(nil)

func (f *fakeMealRepo) Create(_ context.Context, e *model.MealEntry) error {
	f.created = append(f.created, *e)
	return nil
}

func (f *fakeMealRepo) GetByID(_ context.Context, _ model.UserID, _ uuid.UUID) (*model.MealEntry, error) {
	if f.byID == nil {
		return nil, errs.ErrNotFound
	}
	cp := *f.byID
	cp.Products = append([]model.Product(nil), f.byID.Products...)
	return &cp, nil
}

func (f *fakeMealRepo) GetForDate(_ context.Context, _ model.UserID, _ time.Time) ([]model.MealEntry, error) {
	return append([]model.MealEntry(nil), f.forDate...), nil
}

func (f *fakeMealRepo) GetForRange(_ context.Context, _ model.UserID, _, _ time.Time) ([]model.MealEntry, error) {
	return append([]model.MealEntry(nil), f.rangeOut...), nil
}

func (f *fakeMealRepo) Replace(_ context.Context, e *model.MealEntry) error {
	cp := *e
	f.replaced = &cp
	return nil
}

func (f *fakeMealRepo) Delete(_ context.Context, _ model.UserID, _ uuid.UUID) error { return nil }

func (f *fakeMealRepo) DaysWithData(_ context.Context, _ model.UserID, _ int, _ time.Month) ([]int, error) {
	return nil, nil
}

type fakeNutrition struct {
	gotText string
	out     []estimator.ProductEstimate
	err     error
}

func (f *fakeNutrition) Estimate(_ context.Context, text string) ([]estimator.ProductEstimate, error) {
	f.gotText = text
	return f.out, f.err
}

type fakePhoto struct {
	out []estimator.ProductEstimate
	err error
}

func (f *fakePhoto) EstimatePhoto(_ context.Context, _ []byte) ([]estimator.ProductEstimate, error) {
	return f.out, f.err
}

type fakeLabel struct {
	out estimator.Per100g
	err error
}

func (f *fakeLabel) ReadLabel(_ context.Context, _ []byte) (estimator.Per100g, error) {
	return f.out, f.err
}

type fakeScanner struct {
	code string
	err  error
}

func (f *fakeScanner) Scan(_ context.Context, _ []byte) (string, error) { return f.code, f.err }

type fakeLookup struct {
	gotCode string
	out     estimator.Per100g
	err     error
}

func (f *fakeLookup) Lookup(_ context.Context, code string) (estimator.Per100g, error) {
	f.gotCode = code
	return f.out, f.err
}

// fakeTranslator marks text so tests can see whether translation ran.
type fakeTranslator struct{ prefix string }

func (f *fakeTranslator) Translate(_ context.Context, text, _, _ string) string {
	return f.prefix + text
}

type mealFakes struct {
	repo       *fakeMealRepo
	nutrition  *fakeNutrition
	photo      *fakePhoto
	label      *fakeLabel
	scanner    *fakeScanner
	lookup     *fakeLookup
	translator *fakeTranslator
}

func newMealFixture() (*MealServiceImpl, *mealFakes) {
	f := &mealFakes{
		repo:       &fakeMealRepo{},
		nutrition:  &fakeNutrition{},
		photo:      &fakePhoto{},
		label:      &fakeLabel{},
		scanner:    &fakeScanner{},
		lookup:     &fakeLookup{},
		translator: &fakeTranslator{prefix: "en:"},
	}
	s := NewMealService(f.repo, f.nutrition, f.photo, f.label, f.scanner, f.lookup, f.translator, "ru", "en")
	return s, f
}

func TestMealService_AddFromText_TranslatesAndSaves(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, f := newMealFixture()
	f.nutrition.out = []estimator.ProductEstimate{
		{Name: "chicken breast", Grams: 200, Calories: 330, Protein: 62, Fat: 7.2},
		{Name: "buckwheat", Grams: 150, Calories: 195, Protein: 6.8, Fat: 1.5, Carbs: 40},
	}

	e, err := s.AddFromText(ctx, "u1", "курица с гречкой", time.Now())
	if err != nil {
		t.Fatalf("AddFromText: %v", err)
	}
	if f.nutrition.gotText != "en:курица с гречкой" {
		t.Fatalf("estimator must see translated text, got %q", f.nutrition.gotText)
	}
	if e.RawText != "курица с гречкой" {
		t.Fatalf("raw text must keep the user's wording, got %q", e.RawText)
	}
	if e.Calories != 525 || e.Protein != 68.8 {
		t.Fatalf("totals must equal line-item sum: %+v", e)
	}
	if len(f.repo.created) != 1 {
		t.Fatalf("want one insert, got %d", len(f.repo.created))
	}
}

func TestMealService_AddFromText_EstimatorDown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, f := newMealFixture()
	f.nutrition.err = errors.New("timeout")

	_, err := s.AddFromText(ctx, "u1", "soup", time.Now())
	if !errors.Is(err, errs.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
	if len(f.repo.created) != 0 {
		t.Fatalf("nothing must be saved on estimator failure")
	}
}

func TestMealService_AddFromText_NothingRecognized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newMealFixture()

	_, err := s.AddFromText(ctx, "u1", "qwerty", time.Now())
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound on empty recognition, got %v", err)
	}
}

func TestMealService_EditPortions_RecomputesFromScratch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, f := newMealFixture()
	id := uuid.Must(uuid.NewV4())
	f.repo.byID = &model.MealEntry{
		ID: id, UserID: "u1",
		Products: []model.Product{
			{Name: "chicken breast", Grams: 200, Calories: 330, Protein: 62, Fat: 7.2},
			{Name: "buckwheat", Grams: 150, Calories: 195, Protein: 6.8, Fat: 1.5, Carbs: 40},
		},
		Calories: 525, Protein: 68.8, Fat: 8.7, Carbs: 40,
	}

	// Halving the chicken halves its nutrition; the totals are rebuilt
	// from the new product list, not adjusted incrementally.
	e, err := s.EditPortions(ctx, "u1", id, []PortionUpdate{
		{Name: "Chicken Breast", Grams: 100},
		{Name: "buckwheat", Grams: 150},
	})
	if err != nil {
		t.Fatalf("EditPortions: %v", err)
	}
	if e.Products[0].Calories != 165 || e.Products[0].Grams != 100 {
		t.Fatalf("chicken not rescaled: %+v", e.Products[0])
	}
	if e.Calories != 360 {
		t.Fatalf("total want 360 kcal, got %v", e.Calories)
	}
	if f.repo.replaced == nil || f.repo.replaced.Calories != 360 {
		t.Fatalf("replace not persisted: %+v", f.repo.replaced)
	}
}

func TestMealService_EditPortions_UnknownProduct(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, f := newMealFixture()
	id := uuid.Must(uuid.NewV4())
	f.repo.byID = &model.MealEntry{
		ID: id, UserID: "u1",
		Products: []model.Product{{Name: "rice", Grams: 100, Calories: 130}},
	}

	if _, err := s.EditPortions(ctx, "u1", id, []PortionUpdate{{Name: "pasta", Grams: 50}}); err == nil {
		t.Fatalf("want error on unknown product name")
	}
	if f.repo.replaced != nil {
		t.Fatalf("failed edit must not persist anything")
	}
}

func TestMealService_AddFromPer100g_Scales(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, f := newMealFixture()

	p := estimator.Per100g{Name: "yogurt", Brand: "Acme", Calories: 60, Protein: 4, Fat: 2, Carbs: 6}
	e, err := s.AddFromPer100g(ctx, "u1", p, 250, time.Now())
	if err != nil {
		t.Fatalf("AddFromPer100g: %v", err)
	}
	if e.Calories != 150 || e.Protein != 10 {
		t.Fatalf("per-100g scaling wrong: %+v", e)
	}
	if e.Products[0].Name != "Acme yogurt" {
		t.Fatalf("brand must prefix the name, got %q", e.Products[0].Name)
	}
	if len(f.repo.created) != 1 {
		t.Fatalf("want one insert")
	}
}

func TestMealService_ResolveBarcode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, f := newMealFixture()
	f.scanner.code = "4600000000001"
	f.lookup.out = estimator.Per100g{Name: "oat cookies", Calories: 430}

	p, err := s.ResolveBarcode(ctx, []byte{1})
	if err != nil {
		t.Fatalf("ResolveBarcode: %v", err)
	}
	if p.Name != "oat cookies" || f.lookup.gotCode != "4600000000001" {
		t.Fatalf("lookup mismatch: p=%+v code=%q", p, f.lookup.gotCode)
	}

	// An unknown barcode keeps ErrNotFound so the flow can say so,
	// while transport failures surface as ErrUnavailable.
	f.lookup.err = errs.ErrNotFound
	if _, err := s.ResolveBarcode(ctx, []byte{1}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound preserved, got %v", err)
	}
	f.lookup.err = errors.New("http 500")
	if _, err := s.ResolveBarcode(ctx, []byte{1}); !errors.Is(err, errs.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
