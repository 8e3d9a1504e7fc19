package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// ProcedureService logs wellness procedures.
type ProcedureService interface {
	// Add stores a procedure with optional notes.
	Add(ctx context.Context, userID model.UserID, name, notes string, date time.Time) (*model.ProcedureEntry, error)
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
}

type ProcedureServiceImpl struct {
	repo repository.ProcedureRepository
}

// NewProcedureService constructs ProcedureService.
func NewProcedureService(repo repository.ProcedureRepository) *ProcedureServiceImpl {
	return &ProcedureServiceImpl{repo: repo}
}

// Add stores a procedure.
func (s *ProcedureServiceImpl) Add(ctx context.Context, userID model.UserID, name, notes string, date time.Time) (*model.ProcedureEntry, error) {
	if userID == "" || name == "" {
		return nil, errors.New("validation: empty userID/name")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.ProcedureEntry{ID: id, UserID: userID, Name: name, Date: date, Notes: notes}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes one entry.
func (s *ProcedureServiceImpl) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
