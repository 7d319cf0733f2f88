package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/pipemaze/maze/service"
)

// FileStore implements Store using one JSON file per report
type FileStore struct {
	reportsDir string
}

// NewFileStore creates a file-based report store, creating reportsDir if needed
func NewFileStore(reportsDir string) (*FileStore, error) {
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	return &FileStore{
		reportsDir: reportsDir,
	}, nil
}

// Save persists a report to a JSON file
func (fs *FileStore) Save(report *service.Report) error {
	if err := check(report); err != nil {
		return err
	}
	if strings.ContainsAny(report.ID, `/\`) {
		return fmt.Errorf("%w: bad id %q", ErrInvalidReport, report.ID)
	}

	// Marshal to JSON with indentation for readability
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(fs.getFilePath(report.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}

// Load retrieves a report from a JSON file
func (fs *FileStore) Load(id string) (*service.Report, error) {
	if strings.ContainsAny(id, `/\`) || id == "" {
		return nil, ErrReportNotFound
	}

	jsonData, err := os.ReadFile(fs.getFilePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var report service.Report
	if err := json.Unmarshal(jsonData, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// Delete removes a report file
func (fs *FileStore) Delete(id string) error {
	if !fs.Exists(id) {
		return ErrReportNotFound
	}

	if err := os.Remove(fs.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove report file: %w", err)
	}

	return nil
}

// ListAll returns all persisted report IDs
func (fs *FileStore) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fs.reportsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}

	sort.Strings(ids)
	return ids, nil
}

// Exists checks if a report file exists
func (fs *FileStore) Exists(id string) bool {
	if strings.ContainsAny(id, `/\`) || id == "" {
		return false
	}
	_, err := os.Stat(fs.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a report ID
func (fs *FileStore) getFilePath(id string) string {
	return filepath.Join(fs.reportsDir, fmt.Sprintf("%s.json", id))
}
