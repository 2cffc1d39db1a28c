package lead

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository handles lead data access
type Repository struct {
	db *gorm.DB
}

// NewRepository creates lead repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new lead
func (r *Repository) Create(ctx context.Context, l *Lead) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

// HasRecentSubmission reports whether email submitted at or after since.
func (r *Repository) HasRecentSubmission(ctx context.Context, email string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Lead{}).
		Where("email = ? AND created_at >= ?", email, since).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check recent lead: %w", err)
	}
	return count > 0, nil
}

// GetByID returns lead by ID, nil if it does not exist
func (r *Repository) GetByID(ctx context.Context, id string) (*Lead, error) {
	var l Lead
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return &l, nil
}

// List returns leads newest first
func (r *Repository) List(ctx context.Context, status Status, limit, offset int) ([]Lead, error) {
	q := r.db.WithContext(ctx).Model(&Lead{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	leads := make([]Lead, 0, limit)
	err := q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&leads).Error
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// UpdateStatus overwrites status and the triage fields. Nil pointers are
// written as NULL. It reports false when no row has the given id.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status, assignedTo, note *string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Lead{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        status,
			"assigned_to":   assignedTo,
			"internal_note": note,
			"updated_at":    now,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update lead status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CountByStatus returns the number of leads per status
func (r *Repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	var rows []struct {
		Status Status
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&Lead{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}

	counts := make(map[Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
