package services

import (
	"context"
	"io"
	"time"
)

// External service interfaces that our domain services depend on

// StorageService abstracts the blob backend holding uploaded document files.
type StorageService interface {
	Store(ctx context.Context, params StorageParams) (string, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// StorageParams contains parameters for storing files
type StorageParams struct {
	FileReader  io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// CacheService interface for caching operations
type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Mailer sends plain-text notification mail.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Cache key patterns for the application
const (
	DashboardCacheKey         = "dashboard:stats"
	DashboardActivityCacheKey = "dashboard:activity"
)

// Common cache durations
const (
	CacheShortTerm  = 5 * time.Minute
	CacheMediumTerm = 30 * time.Minute
)
