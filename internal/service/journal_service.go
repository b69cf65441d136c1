package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/repository"
)

// --- Error Definitions ---
var (
	ErrInvalidDate    = errors.New("date must be YYYY-MM-DD")
	ErrJournalMissing = errors.New("no journal recorded for that date")
)

// JournalService is the store boundary for daily journal entries.
// Reads degrade to safe defaults (empty shell, empty list) and log the
// failure; writes propagate errors to the caller.
type JournalService interface {
	GetJournal(ctx context.Context, date string) (*domain.Journal, error)
	ListJournals(ctx context.Context) ([]domain.Journal, error)
	SaveJournal(ctx context.Context, journal *domain.Journal) (*domain.Journal, error)
	UpdateJournal(ctx context.Context, date string, fields map[string]interface{}) error
	DeleteJournal(ctx context.Context, date string) error
}

type journalService struct {
	journalRepo repository.JournalRepository
}

// NewJournalService creates a new instance of journalService.
func NewJournalService(journalRepo repository.JournalRepository) JournalService {
	return &journalService{journalRepo: journalRepo}
}

// GetJournal returns the stored journal for a date, or a synthesized
// empty shell when nothing was written yet. The shell is not persisted
// until the first write.
func (s *journalService) GetJournal(ctx context.Context, date string) (*domain.Journal, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	journal, err := s.journalRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.Journal{Date: date}, nil
		}
		logrus.WithError(err).WithField("date", date).Warn("journal read failed, returning empty shell")
		return &domain.Journal{Date: date}, nil
	}
	return journal, nil
}

// ListJournals returns all journals sorted descending by date; on a
// storage failure it logs and returns an empty list.
func (s *journalService) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	journals, err := s.journalRepo.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("journal list read failed, returning empty list")
		return []domain.Journal{}, nil
	}
	return journals, nil
}

// SaveJournal upserts the whole journal for its date.
func (s *journalService) SaveJournal(ctx context.Context, journal *domain.Journal) (*domain.Journal, error) {
	if _, err := time.Parse(domain.DateLayout, journal.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if err := s.journalRepo.Put(ctx, journal); err != nil {
		return nil, err
	}
	return s.journalRepo.GetByDate(ctx, journal.Date)
}

// UpdateJournal merges partial fields onto an existing journal. A date
// nothing was ever written for is a no-op: partial updates never
// create records.
func (s *journalService) UpdateJournal(ctx context.Context, date string, fields map[string]interface{}) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	err := s.journalRepo.Update(ctx, date, fields)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// DeleteJournal removes the entry for a date.
func (s *journalService) DeleteJournal(ctx context.Context, date string) error {
	err := s.journalRepo.Delete(ctx, date)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrJournalMissing
	}
	return err
}
