package service_test

import (
	"context"
	"sort"
	"time"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/repository"
)

// In-memory repository fakes. Each embeds an optional forced error so
// tests can exercise the degrade-on-read / propagate-on-write rules.

type fakeJournalRepo struct {
	journals map[string]domain.Journal
	err      error
}

func newFakeJournalRepo(journals ...domain.Journal) *fakeJournalRepo {
	repo := &fakeJournalRepo{journals: map[string]domain.Journal{}}
	for _, j := range journals {
		repo.journals[j.Date] = j
	}
	return repo
}

func (r *fakeJournalRepo) GetAll(ctx context.Context) ([]domain.Journal, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Journal, 0, len(r.journals))
	for _, j := range r.journals {
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date > out[b].Date })
	return out, nil
}

func (r *fakeJournalRepo) GetByDate(ctx context.Context, date string) (*domain.Journal, error) {
	if r.err != nil {
		return nil, r.err
	}
	j, ok := r.journals[date]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &j, nil
}

func (r *fakeJournalRepo) Create(ctx context.Context, journal *domain.Journal) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.journals[journal.Date]; ok {
		return repository.ErrDuplicateKey
	}
	journal.LastModified = time.Now().UTC()
	r.journals[journal.Date] = *journal
	return nil
}

func (r *fakeJournalRepo) Put(ctx context.Context, journal *domain.Journal) error {
	if r.err != nil {
		return r.err
	}
	journal.LastModified = time.Now().UTC()
	r.journals[journal.Date] = *journal
	return nil
}

func (r *fakeJournalRepo) Update(ctx context.Context, date string, fields map[string]interface{}) error {
	if r.err != nil {
		return r.err
	}
	j, ok := r.journals[date]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "body":
			j.Body = v.(*domain.BodyMetrics)
		case "daily":
			j.Daily = v.(*domain.DailyMetrics)
		case "workout":
			j.Workout = v.(*domain.WorkoutLog)
		case "notes":
			j.Notes = v.(string)
		}
	}
	j.LastModified = time.Now().UTC()
	r.journals[date] = j
	return nil
}

func (r *fakeJournalRepo) Delete(ctx context.Context, date string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.journals[date]; !ok {
		return repository.ErrNotFound
	}
	delete(r.journals, date)
	return nil
}

type fakeProgramRepo struct {
	programs map[string]domain.Program
	err      error
}

func newFakeProgramRepo(programs ...domain.Program) *fakeProgramRepo {
	repo := &fakeProgramRepo{programs: map[string]domain.Program{}}
	for _, p := range programs {
		repo.programs[p.ID] = p
	}
	return repo
}

func (r *fakeProgramRepo) GetAll(ctx context.Context) ([]domain.Program, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Program, 0, len(r.programs))
	for _, p := range r.programs {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProgramRepo) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProgramRepo) Create(ctx context.Context, program *domain.Program) error {
	if r.err != nil {
		return r.err
	}
	if program.ID == "" {
		program.ID = "prog-" + program.Name
	}
	if program.CreatedAt.IsZero() {
		program.CreatedAt = time.Now().UTC()
	}
	r.programs[program.ID] = *program
	return nil
}

func (r *fakeProgramRepo) Put(ctx context.Context, program *domain.Program) error {
	if r.err != nil {
		return r.err
	}
	r.programs[program.ID] = *program
	return nil
}

func (r *fakeProgramRepo) Delete(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.programs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.programs, id)
	return nil
}

type fakeGoalRepo struct {
	goals map[string]domain.Goal
	err   error
}

func newFakeGoalRepo(goals ...domain.Goal) *fakeGoalRepo {
	repo := &fakeGoalRepo{goals: map[string]domain.Goal{}}
	for _, g := range goals {
		repo.goals[g.ID] = g
	}
	return repo
}

func (r *fakeGoalRepo) GetAll(ctx context.Context) ([]domain.Goal, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Goal, 0, len(r.goals))
	for _, g := range r.goals {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	if r.err != nil {
		return nil, r.err
	}
	g, ok := r.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (r *fakeGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	if r.err != nil {
		return r.err
	}
	if goal.ID == "" {
		goal.ID = "goal-" + goal.Metric
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}
	r.goals[goal.ID] = *goal
	return nil
}

func (r *fakeGoalRepo) Put(ctx context.Context, goal *domain.Goal) error {
	if r.err != nil {
		return r.err
	}
	r.goals[goal.ID] = *goal
	return nil
}

func (r *fakeGoalRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if r.err != nil {
		return r.err
	}
	g, ok := r.goals[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, present := fields["completedAt"]; present {
		if v == nil {
			g.CompletedAt = nil
		} else {
			at := v.(time.Time)
			g.CompletedAt = &at
		}
	}
	r.goals[id] = g
	return nil
}

func (r *fakeGoalRepo) Delete(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.goals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.goals, id)
	return nil
}

type fakeProfileRepo struct {
	profile *domain.Profile
	err     error
}

func (r *fakeProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.profile == nil {
		return nil, repository.ErrNotFound
	}
	return r.profile, nil
}

func (r *fakeProfileRepo) Put(ctx context.Context, profile *domain.Profile) error {
	if r.err != nil {
		return r.err
	}
	profile.ID = domain.ProfileKey
	r.profile = profile
	return nil
}

type fakeSettingsRepo struct {
	activeProgram string
	err           error
}

func (r *fakeSettingsRepo) GetActiveProgram(ctx context.Context) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.activeProgram, nil
}

func (r *fakeSettingsRepo) SetActiveProgram(ctx context.Context, programID string) error {
	if r.err != nil {
		return r.err
	}
	r.activeProgram = programID
	return nil
}

func (r *fakeSettingsRepo) ClearActiveProgram(ctx context.Context) error {
	if r.err != nil {
		return r.err
	}
	r.activeProgram = ""
	return nil
}

// fakeBundleStore records Replace calls so import tests can assert
// nothing was mutated on rejection.
type fakeBundleStore struct {
	snapshot     *domain.Bundle
	replaced     *domain.Bundle
	replaceCalls int
	err          error
}

func (s *fakeBundleStore) Snapshot(ctx context.Context) (*domain.Bundle, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.snapshot != nil {
		return s.snapshot, nil
	}
	return &domain.Bundle{
		Version:    domain.BundleVersion,
		ExportedAt: time.Now().UTC(),
		Programs:   []domain.Program{},
		Journals:   []domain.Journal{},
	}, nil
}

func (s *fakeBundleStore) Replace(ctx context.Context, bundle *domain.Bundle) error {
	if s.err != nil {
		return s.err
	}
	s.replaceCalls++
	s.replaced = bundle
	return nil
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
