package instance

import (
	"sort"
	"sync"

	"github.com/openparlor/parlor-ctl/internal/errors"
)

// MemoryRegistry is an in-memory Registry for tests.
type MemoryRegistry struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{records: make(map[string]*Record)}
}

func (r *MemoryRegistry) Create(rec *Record) error {
	if err := rec.Validate(); err != nil {
		return errors.ValidationError(err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.Name]; ok {
		return errors.DuplicateName(rec.Name)
	}

	for _, existing := range r.records {
		if existing.AppPort == rec.AppPort || existing.DBPort == rec.AppPort {
			return errors.PortConflict(rec.AppPort)
		}
		if existing.AppPort == rec.DBPort || existing.DBPort == rec.DBPort {
			return errors.PortConflict(rec.DBPort)
		}
	}

	clone := *rec
	r.records[rec.Name] = &clone
	return nil
}

func (r *MemoryRegistry) List() ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		clone := *rec
		records = append(records, &clone)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	return records, nil
}

func (r *MemoryRegistry) Get(name string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[name]
	if !ok {
		return nil, errors.NotFound(name)
	}

	clone := *rec
	return &clone, nil
}

func (r *MemoryRegistry) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[name]; !ok {
		return errors.NotFound(name)
	}

	delete(r.records, name)
	return nil
}

func (r *MemoryRegistry) Dir(name string) (string, error) {
	return "", nil
}

var _ Registry = (*MemoryRegistry)(nil)
var _ Registry = (*FSRegistry)(nil)
