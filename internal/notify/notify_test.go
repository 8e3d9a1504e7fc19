package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

type fakeSupplementRepo struct {
	notifiable []model.Supplement
	listErr    error
}

var _ repository.SupplementRepository = (*fakeSupplementRepo)(nil)

func (f *fakeSupplementRepo) Create(ctx context.Context, s *model.Supplement) error { return nil }
func (f *fakeSupplementRepo) GetByID(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.Supplement, error) {
	return nil, nil
}
func (f *fakeSupplementRepo) ListByUser(ctx context.Context, userID model.UserID) ([]model.Supplement, error) {
	return nil, nil
}
func (f *fakeSupplementRepo) Update(ctx context.Context, s *model.Supplement) error { return nil }
func (f *fakeSupplementRepo) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return nil
}
func (f *fakeSupplementRepo) ListNotifiable(ctx context.Context) ([]model.Supplement, error) {
	return f.notifiable, f.listErr
}
func (f *fakeSupplementRepo) CreateEntry(ctx context.Context, e *model.SupplementEntry) error {
	return nil
}
func (f *fakeSupplementRepo) GetEntry(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.SupplementEntry, error) {
	return nil, nil
}
func (f *fakeSupplementRepo) EntriesForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.SupplementEntry, error) {
	return nil, nil
}
func (f *fakeSupplementRepo) DeleteEntry(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return nil
}
func (f *fakeSupplementRepo) EntryDaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	return nil, nil
}

type sentNote struct {
	userID model.UserID
	text   string
}

type fakeNotifier struct {
	sent []sentNote
	err  error
}

func (f *fakeNotifier) Notify(ctx context.Context, userID model.UserID, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentNote{userID: userID, text: text})
	return nil
}

func newSupp(user, name string, times, days []string) model.Supplement {
	id, _ := uuid.NewV4()
	return model.Supplement{
		ID:     id,
		UserID: model.UserID(user),
		Name:   name,
		Times:  times,
		Days:   days,
		Notify: true,
	}
}

// 2025-06-02 is a Monday.
var monday0800 = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func newScheduler(repo *fakeSupplementRepo, out *fakeNotifier, at time.Time) *Scheduler {
	s := NewScheduler(repo, out, zap.NewNop())
	s.now = func() time.Time { return at }
	return s
}

func TestSchedulerMatchesWeekdayAndTime(t *testing.T) {
	t.Parallel()

	repo := &fakeSupplementRepo{notifiable: []model.Supplement{
		newSupp("u1", "Magnesium", []string{"08:00", "21:00"}, []string{"monday", "thursday"}),
		newSupp("u2", "Omega-3", []string{"08:00"}, []string{"tuesday"}),
		newSupp("u3", "Vitamin D", []string{"09:30"}, []string{"monday"}),
	}}
	out := &fakeNotifier{}
	s := newScheduler(repo, out, monday0800)

	s.tick(context.Background())

	if len(out.sent) != 1 {
		t.Fatalf("sent = %v, want exactly one", out.sent)
	}
	if out.sent[0].userID != "u1" || out.sent[0].text != "Time to take Magnesium (08:00)." {
		t.Fatalf("note = %+v", out.sent[0])
	}
}

func TestSchedulerDedupsWithinDay(t *testing.T) {
	t.Parallel()

	repo := &fakeSupplementRepo{notifiable: []model.Supplement{
		newSupp("u1", "Magnesium", []string{"08:00"}, []string{"monday"}),
	}}
	out := &fakeNotifier{}
	s := newScheduler(repo, out, monday0800)

	s.tick(context.Background())
	s.tick(context.Background())
	if len(out.sent) != 1 {
		t.Fatalf("same minute must deliver once, got %d", len(out.sent))
	}

	// A week later the same slot fires again.
	s.now = func() time.Time { return monday0800.AddDate(0, 0, 7) }
	s.tick(context.Background())
	if len(out.sent) != 2 {
		t.Fatalf("new day must deliver again, got %d", len(out.sent))
	}
}

func TestSchedulerRetriesFailedDelivery(t *testing.T) {
	t.Parallel()

	repo := &fakeSupplementRepo{notifiable: []model.Supplement{
		newSupp("u1", "Magnesium", []string{"08:00"}, []string{"monday"}),
	}}
	out := &fakeNotifier{err: errors.New("transport down")}
	s := newScheduler(repo, out, monday0800)

	s.tick(context.Background())
	if len(out.sent) != 0 {
		t.Fatalf("failed delivery must not count as sent, got %v", out.sent)
	}

	out.err = nil
	s.tick(context.Background())
	if len(out.sent) != 1 {
		t.Fatalf("next pass in the same minute should retry, got %d", len(out.sent))
	}
}

func TestSchedulerSurvivesRepoError(t *testing.T) {
	t.Parallel()

	repo := &fakeSupplementRepo{listErr: errors.New("pg down")}
	out := &fakeNotifier{}
	s := newScheduler(repo, out, monday0800)

	s.tick(context.Background())
	if len(out.sent) != 0 {
		t.Fatalf("sent = %v", out.sent)
	}
}
