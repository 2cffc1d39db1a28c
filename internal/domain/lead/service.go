package lead

import (
	"context"
	"time"

	"go.uber.org/zap"

	"zenvor/internal/domain/intake"
	"zenvor/internal/pkg/telemetry"
	"zenvor/internal/pkg/validator"
)

// Store is the persistence the service needs. *Repository implements it.
type Store interface {
	Create(ctx context.Context, l *Lead) error
	HasRecentSubmission(ctx context.Context, email string, since time.Time) (bool, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, status Status, limit, offset int) ([]Lead, error)
	UpdateStatus(ctx context.Context, id string, status Status, assignedTo, note *string, now time.Time) (bool, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// Service handles lead business logic
type Service struct {
	store   Store
	log     *zap.Logger
	metrics *telemetry.IntakeMetrics
	now     intake.Clock
}

// NewService creates lead service. log and metrics may be nil.
func NewService(store Store, log *zap.Logger, metrics *telemetry.IntakeMetrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:   store,
		log:     log.Named("lead"),
		metrics: metrics,
		now:     intake.SystemClock,
	}
}

// Submit validates and stores a wizard submission. At most one lead per
// email is accepted within intake.Window.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (res *intake.SubmitResult, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "lead.Submit")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	req = req.normalized()
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	now := s.now()
	dup, err := s.store.HasRecentSubmission(ctx, req.Email, intake.Since(now))
	if err != nil {
		return nil, err
	}
	if dup {
		s.metrics.DuplicateRejected(ctx, string(intake.KindLead))
		s.log.Info("duplicate lead rejected", zap.String("email", req.Email))
		return nil, intake.ErrDuplicateSubmission
	}

	l := req.toLead(now)
	if err := s.store.Create(ctx, l); err != nil {
		return nil, err
	}

	s.metrics.Submitted(ctx, string(intake.KindLead))
	s.log.Info("lead submitted",
		zap.String("id", l.ID),
		zap.String("company_size", string(l.CompanySize)),
	)
	return &intake.SubmitResult{ID: l.ID}, nil
}

// List returns leads newest first
func (s *Service) List(ctx context.Context, q ListQuery) ([]Lead, error) {
	q = q.withDefaults()
	if err := validator.Struct(&q); err != nil {
		return nil, err
	}
	return s.store.List(ctx, q.Status, q.Limit, q.Offset)
}

// Get returns lead by ID
func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	l, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, intake.ErrNotFound
	}
	return l, nil
}

// UpdateStatus sets the status and overwrites assigned_to and
// internal_note. Omitted values are cleared.
func (s *Service) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (res *intake.SubmitResult, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "lead.UpdateStatus")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	req.AssignedTo = intake.OptionalString(req.AssignedTo)
	req.InternalNote = intake.OptionalString(req.InternalNote)
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	found, err := s.store.UpdateStatus(ctx, req.ID, req.Status, req.AssignedTo, req.InternalNote, s.now())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, intake.ErrNotFound
	}

	s.metrics.StatusUpdated(ctx, string(intake.KindLead), string(req.Status))
	s.log.Info("lead status updated", zap.String("id", req.ID), zap.String("status", string(req.Status)))
	return &intake.SubmitResult{ID: req.ID}, nil
}

// Stats returns the number of leads in every status
func (s *Service) Stats(ctx context.Context) (StatsResponse, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := make(StatsResponse, len(Pipeline))
	for _, st := range Pipeline {
		stats[st] = counts[st]
	}
	return stats, nil
}
