package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// Allowed answers for the wellbeing quick survey.
var (
	MoodOptions       = []string{"great", "ok", "so-so", "bad"}
	InfluenceOptions  = []string{"sleep", "food", "stress", "training", "weather", "other"}
	DifficultyOptions = []string{"morning", "afternoon", "evening", "all day"}

	// moodsNeedingDifficulty is the subset of moods that trigger the
	// third survey question.
	moodsNeedingDifficulty = map[string]bool{"so-so": true, "bad": true}
)

// MoodNeedsDifficulty reports whether the quick survey must ask the
// difficulty question for this mood.
func MoodNeedsDifficulty(mood string) bool { return moodsNeedingDifficulty[mood] }

// WellbeingService logs quick surveys and free-text comments.
type WellbeingService interface {
	// AddQuick stores a quick check-in. Difficulty is required exactly
	// when the mood demands it.
	AddQuick(ctx context.Context, userID model.UserID, date time.Time, mood, influence, difficulty string) (*model.WellbeingEntry, error)
	// AddComment stores a free-text check-in.
	AddComment(ctx context.Context, userID model.UserID, date time.Time, comment string) (*model.WellbeingEntry, error)
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
}

type WellbeingServiceImpl struct {
	repo repository.WellbeingRepository
}

// NewWellbeingService constructs WellbeingService.
func NewWellbeingService(repo repository.WellbeingRepository) *WellbeingServiceImpl {
	return &WellbeingServiceImpl{repo: repo}
}

// AddQuick validates the conditional difficulty rule and stores the entry.
func (s *WellbeingServiceImpl) AddQuick(ctx context.Context, userID model.UserID, date time.Time, mood, influence, difficulty string) (*model.WellbeingEntry, error) {
	if userID == "" {
		return nil, errors.New("validation: empty userID")
	}
	if MoodNeedsDifficulty(mood) && difficulty == "" {
		return nil, errors.New("validation: difficulty required for this mood")
	}
	if !MoodNeedsDifficulty(mood) && difficulty != "" {
		return nil, errors.New("validation: difficulty not expected for this mood")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.WellbeingEntry{
		ID:         id,
		UserID:     userID,
		Date:       date,
		Kind:       model.WellbeingQuick,
		Mood:       mood,
		Influence:  influence,
		Difficulty: difficulty,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// AddComment stores a free-text check-in.
func (s *WellbeingServiceImpl) AddComment(ctx context.Context, userID model.UserID, date time.Time, comment string) (*model.WellbeingEntry, error) {
	if userID == "" || comment == "" {
		return nil, errors.New("validation: empty userID/comment")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.WellbeingEntry{
		ID:      id,
		UserID:  userID,
		Date:    date,
		Kind:    model.WellbeingComment,
		Comment: comment,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes one entry.
func (s *WellbeingServiceImpl) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
