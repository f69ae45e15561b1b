package services

import (
	"sync"
	"sync/atomic"
	"time"

	"keyword-extraction-service/internal/catalog"
	"keyword-extraction-service/internal/logger"
	"keyword-extraction-service/internal/matcher"
)

// Status is the lifecycle state of the keyword service.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusReady         Status = "ready"
	StatusDegraded      Status = "degraded"
)

// snapshot is one immutable (catalog, registry) pair plus the state it
// put the service in. Requests read exactly one snapshot; a reload
// publishes a complete replacement in a single pointer swap so no request
// ever observes a half-updated catalog.
type snapshot struct {
	status   Status
	catalog  *catalog.Catalog
	registry matcher.Registry
	loadErr  error
	loadedAt time.Time
}

// State owns the process-wide catalog and matcher registry. Construct it
// once at startup and inject it into the handlers; all reads are
// lock-free, and Load is serialized so concurrent reloads cannot
// interleave their swaps.
type State struct {
	schema  catalog.FieldSchema
	current atomic.Pointer[snapshot]
	loadMu  sync.Mutex
}

// NewState creates the service state in the Uninitialized status with an
// empty catalog and registry, so requests arriving before the first load
// get empty results rather than rejections.
func NewState(schema catalog.FieldSchema) *State {
	s := &State{schema: schema}
	s.current.Store(&snapshot{
		status:   StatusUninitialized,
		catalog:  catalog.New(nil),
		registry: matcher.Registry{},
	})
	return s
}

// Load reads the source table, trains the matchers and atomically swaps
// the new pair in. On failure the service degrades: the previous catalog
// is replaced by an empty one and the load error is kept for readiness
// reporting. The returned error is the load error, already absorbed into
// the state.
func (s *State) Load(path string) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	prev := s.current.Load()
	s.current.Store(&snapshot{
		status:   StatusLoading,
		catalog:  prev.catalog,
		registry: prev.registry,
		loadedAt: prev.loadedAt,
	})

	cat, err := catalog.Load(path, s.schema)
	if err != nil {
		logger.Error("Catalog load failed", "path", path, "error", err)
		s.current.Store(&snapshot{
			status:   StatusDegraded,
			catalog:  catalog.New(nil),
			registry: matcher.Registry{},
			loadErr:  err,
		})
		return err
	}

	registry, err := matcher.Train(cat)
	if err != nil {
		logger.Error("Matcher training failed", "error", err)
		s.current.Store(&snapshot{
			status:   StatusDegraded,
			catalog:  catalog.New(nil),
			registry: matcher.Registry{},
			loadErr:  err,
		})
		return err
	}

	status := StatusReady
	if cat.Len() == 0 || registry.Len() == 0 {
		status = StatusDegraded
	}
	s.current.Store(&snapshot{
		status:   status,
		catalog:  cat,
		registry: registry,
		loadedAt: time.Now(),
	})

	logger.Info("Catalog loaded",
		"entries", cat.Len(),
		"keywords", cat.Size(),
		"languages", registry.Len(),
		"status", string(status))
	return nil
}

// Snapshot returns the catalog and registry of one consistent snapshot.
// Use this instead of separate Catalog/Registry calls when both are
// needed for a single request, so a concurrent reload cannot hand out a
// mismatched pair.
func (s *State) Snapshot() (*catalog.Catalog, matcher.Registry) {
	snap := s.current.Load()
	return snap.catalog, snap.registry
}

// Status returns the current lifecycle status.
func (s *State) Status() Status {
	return s.current.Load().status
}

// Ready reports whether the catalog and at least one matcher are loaded.
func (s *State) Ready() bool {
	return s.current.Load().status == StatusReady
}

// LoadError returns the error that degraded the service, if any.
func (s *State) LoadError() error {
	return s.current.Load().loadErr
}

// Catalog returns the catalog of the current snapshot.
func (s *State) Catalog() *catalog.Catalog {
	return s.current.Load().catalog
}

// Registry returns the matcher registry of the current snapshot.
func (s *State) Registry() matcher.Registry {
	return s.current.Load().registry
}

// LoadedAt returns the time of the last successful load.
func (s *State) LoadedAt() time.Time {
	return s.current.Load().loadedAt
}
