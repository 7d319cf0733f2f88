package report

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/pipemaze/maze/service"
)

var (
	ErrReportNotFound = service.ErrReportNotFound
	ErrInvalidReport  = errors.New("invalid report")
)

// Store defines the interface for persisting solve reports
type Store interface {
	service.ReportStore

	// Delete removes a report from storage
	Delete(id string) error

	// Exists checks if a report exists in storage
	Exists(id string) bool
}

// MemoryStore keeps reports in memory. It is used when no report directory is configured
// and in tests.
type MemoryStore struct {
	reports map[string]*service.Report
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory report store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[string]*service.Report),
	}
}

func (m *MemoryStore) Save(report *service.Report) error {
	if err := check(report); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[strings.ToLower(report.ID)] = report
	return nil
}

func (m *MemoryStore) Load(id string) (*service.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report, ok := m.reports[strings.ToLower(id)]
	if !ok {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, ok := m.reports[key]; !ok {
		return ErrReportNotFound
	}
	delete(m.reports, key)
	return nil
}

func (m *MemoryStore) ListAll() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.reports))
	for _, report := range m.reports {
		ids = append(ids, report.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryStore) Exists(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.reports[strings.ToLower(id)]
	return ok
}

func check(report *service.Report) error {
	if report == nil {
		return errors.New("report cannot be nil")
	}
	if report.ID == "" {
		return ErrInvalidReport
	}
	return nil
}
