// Package intake holds the pieces shared by both submission funnels:
// sentinel errors, the duplicate window, email normalization and the
// HTTP error mapping used by the lead and demo handlers.
package intake

import (
	"errors"
	"strings"
	"time"
)

// Kind identifies the funnel a record came through.
type Kind string

const (
	KindLead Kind = "lead"
	KindDemo Kind = "demo"
)

// Window is the trailing period in which one email may submit once per kind.
const Window = 24 * time.Hour

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var (
	ErrDuplicateSubmission = errors.New("a submission from this email was already received today")
	ErrNotFound            = errors.New("record not found")
)

// Clock returns the current time. Services take one so the duplicate
// window can be exercised in tests.
type Clock func() time.Time

// SystemClock is the production clock. Times are kept in UTC so stored
// timestamps compare correctly on every driver.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// SubmitResult is returned by submit and status update operations.
type SubmitResult struct {
	ID string `json:"id"`
}

// NormalizeEmail lower-cases and trims an address. The result is the dedup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OptionalString trims s and returns nil when nothing is left.
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Since returns the lower bound of the duplicate window ending at now.
func Since(now time.Time) time.Time {
	return now.Add(-Window)
}
