package demo

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
	Create(ctx context.Context, dr *Request) error
	HasRecentSubmission(ctx context.Context, email string, since time.Time) (bool, error)
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, status Status, limit, offset int) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status Status, assignedTo, note *string, now time.Time) (bool, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// Service handles demo request business logic
type Service struct {
	store   Store
	log     *zap.Logger
	metrics *telemetry.IntakeMetrics
	now     intake.Clock
}

// NewService creates demo request service. log and metrics may be nil.
func NewService(store Store, log *zap.Logger, metrics *telemetry.IntakeMetrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:   store,
		log:     log.Named("demo"),
		metrics: metrics,
		now:     intake.SystemClock,
	}
}

// Submit validates and stores a demo booking. At most one request per email
// is accepted within intake.Window.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (res *intake.SubmitResult, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "demo.Submit")
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
		s.metrics.DuplicateRejected(ctx, string(intake.KindDemo))
		s.log.Info("duplicate demo request rejected", zap.String("email", req.Email))
		return nil, intake.ErrDuplicateSubmission
	}

	dr := req.toRequest(now)
	if err := s.store.Create(ctx, dr); err != nil {
		return nil, err
	}

	s.metrics.Submitted(ctx, string(intake.KindDemo))
	s.log.Info("demo request submitted",
		zap.String("id", dr.ID),
		zap.Bool("has_phone", dr.Phone != nil),
	)
	return &intake.SubmitResult{ID: dr.ID}, nil
}

// List returns demo requests newest first
func (s *Service) List(ctx context.Context, q ListQuery) ([]Request, error) {
	q = q.withDefaults()
	if err := validator.Struct(&q); err != nil {
		return nil, err
	}
	return s.store.List(ctx, q.Status, q.Limit, q.Offset)
}

// Get returns demo request by ID
func (s *Service) Get(ctx context.Context, id string) (*Request, error) {
	dr, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dr == nil {
		return nil, intake.ErrNotFound
	}
	return dr, nil
}

// UpdateStatus sets the status and overwrites assigned_to and
// internal_note. Omitted values are cleared.
func (s *Service) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (res *intake.SubmitResult, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "demo.UpdateStatus")
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

	s.metrics.StatusUpdated(ctx, string(intake.KindDemo), string(req.Status))
	s.log.Info("demo request status updated", zap.String("id", req.ID), zap.String("status", string(req.Status)))
	return &intake.SubmitResult{ID: req.ID}, nil
}

// Stats returns the number of demo requests in every status
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
