package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultConnectWait is how long ConnectWithRetry keeps trying by default.
const DefaultConnectWait = 30 * time.Second

// ConnectWithRetry calls Connect until it succeeds, a non-transient error
// occurs, or maxElapsed passes. It covers the API starting before its
// database container is ready.
func ConnectWithRetry(ctx context.Context, dsn string, log *zap.Logger, maxElapsed time.Duration) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if maxElapsed <= 0 {
		maxElapsed = DefaultConnectWait
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxElapsedTime = maxElapsed

	var db *gorm.DB
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		var err error
		db, err = Connect(dsn, log)
		if err == nil {
			return nil
		}
		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}
		log.Warn("database not ready, retrying", zap.Int("attempt", attempt), zap.Error(err))
		return err
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return nil, err
	}
	return db, nil
}

// isRetryableError reports whether err looks like a database that is still
// starting or briefly unreachable.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 57P03 cannot_connect_now, 53300 too_many_connections
		return pgErr.Code == "57P03" || pgErr.Code == "53300"
	}
	if pgconn.Timeout(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"no such host",
		"the database system is starting up",
		"the database system is shutting down",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
