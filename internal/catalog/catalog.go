// Package catalog provides the entity catalog service. It wraps a
// store.Store with validation, tag normalisation, attribute timestamp
// merging, fuzzy search and tag registry maintenance, and implements
// service.Service for every entlog surface.
package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/repo"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/jpl-au/entlog/internal/validate"
)

// Service is the catalog backed by a Store.
type Service struct {
	store    store.Store
	cfg      *config.Config
	now      func() time.Time
	mediaDir string
	root     string // directory holding .entlog, empty when built from a store
}

// Compile-time interface compliance check.
var _ service.Service = (*Service)(nil)

// Option configures a Service built by NewWithStore.
type Option func(*Service)

// WithClock replaces time.Now for entity and attribute timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMediaDir sets the media directory. Relative paths are made absolute
// against the working directory.
func WithMediaDir(dir string) Option {
	return func(s *Service) { s.mediaDir = dir }
}

// New opens the catalog database found by walking up from the working
// directory. The db parameter names the database (empty for default).
// Returns repo.ErrNotInitialised if no catalog is found.
func New(db string) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open opens the catalog database at an explicit path. Relative media
// directories resolve against the directory holding .entlog.
func Open(dbPath string) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	root := filepath.Dir(filepath.Dir(dbPath))
	mediaDir := cfg.MediaDir()
	if !filepath.IsAbs(mediaDir) {
		mediaDir = filepath.Join(root, mediaDir)
	}
	svc := NewWithStore(s, cfg, WithMediaDir(mediaDir))
	svc.root = root
	return svc, nil
}

// NewWithStore builds a Service around an already open store. A nil cfg
// uses defaults.
func NewWithStore(st store.Store, cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	s := &Service{
		store:    st,
		cfg:      cfg,
		now:      time.Now,
		mediaDir: cfg.MediaDir(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if abs, err := filepath.Abs(s.mediaDir); err == nil {
		s.mediaDir = abs
	}
	return s
}

// Init initialises a new catalog. See repo.Init.
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("catalog:close", "checkpoint").Write(err)
	}
	return s.store.Close()
}

// Stats returns aggregate catalog statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// Config returns the service configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// MediaDir returns the absolute media directory.
func (s *Service) MediaDir() string {
	return s.mediaDir
}

// Root returns the directory holding the .entlog catalog directory.
func (s *Service) Root() string {
	return s.root
}

// DB returns the underlying database connection.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

func (s *Service) entityOptions() validate.EntityOptions {
	return validate.EntityOptions{MaxField: s.cfg.MaxField(), MaxTags: s.cfg.MaxTags()}
}
