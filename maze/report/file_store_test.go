package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wricardo/pipemaze/maze/engine"
	"github.com/wricardo/pipemaze/maze/service"
)

var squareLayout = []string{
	".....",
	".S-7.",
	".|.|.",
	".L-J.",
	".....",
}

func createTestReport(t *testing.T, id string) *service.Report {
	t.Helper()
	solution, err := engine.SolveLines(squareLayout, engine.Options{})
	if err != nil {
		t.Fatalf("Failed to solve layout: %v", err)
	}
	return &service.Report{
		ID:        id,
		PuzzleID:  "square",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Layout:    squareLayout,
		Solution:  solution,
	}
}

func TestFileStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewFileStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	report := createTestReport(t, "report1")

	t.Run("Save and Load Report", func(t *testing.T) {
		if err := store.Save(report); err != nil {
			t.Fatalf("Failed to save report: %v", err)
		}

		if !store.Exists("report1") {
			t.Error("Report file should exist after save")
		}

		loaded, err := store.Load("report1")
		if err != nil {
			t.Fatalf("Failed to load report: %v", err)
		}

		if loaded.PuzzleID != "square" {
			t.Errorf("Expected puzzle square, got %s", loaded.PuzzleID)
		}
		if !loaded.CreatedAt.Equal(report.CreatedAt) {
			t.Errorf("Expected created_at %v, got %v", report.CreatedAt, loaded.CreatedAt)
		}
		if loaded.Solution.Farthest != 4 {
			t.Errorf("Expected farthest 4, got %d", loaded.Solution.Farthest)
		}
		if loaded.Solution.Interior != 1 {
			t.Errorf("Expected interior 1, got %d", loaded.Solution.Interior)
		}
		if loaded.Solution.InitialDirection != engine.South {
			t.Errorf("Expected initial direction south, got %s", loaded.Solution.InitialDirection)
		}
		if loaded.Solution.Orientation != report.Solution.Orientation {
			t.Errorf("Expected orientation %s, got %s", report.Solution.Orientation, loaded.Solution.Orientation)
		}
		if len(loaded.Solution.Marked) != 5 || loaded.Solution.Marked[2] != ".|I|." {
			t.Errorf("Unexpected marked grid %v", loaded.Solution.Marked)
		}
	})

	t.Run("List All Reports", func(t *testing.T) {
		if err := store.Save(createTestReport(t, "report0")); err != nil {
			t.Fatal(err)
		}
		// Stray files are ignored
		if err := os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Mkdir(filepath.Join(tempDir, "sub.json"), 0755); err != nil {
			t.Fatal(err)
		}

		ids, err := store.ListAll()
		if err != nil {
			t.Fatalf("Failed to list reports: %v", err)
		}
		if len(ids) != 2 || ids[0] != "report0" || ids[1] != "report1" {
			t.Errorf("Expected [report0 report1], got %v", ids)
		}
	})

	t.Run("Delete Report", func(t *testing.T) {
		if err := store.Delete("report1"); err != nil {
			t.Fatalf("Failed to delete report: %v", err)
		}
		if store.Exists("report1") {
			t.Error("Report file should not exist after delete")
		}
		if err := store.Delete("report1"); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("Expected ErrReportNotFound, got %v", err)
		}
	})

	t.Run("Load Missing Report", func(t *testing.T) {
		if _, err := store.Load("nonexistent"); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("Expected ErrReportNotFound, got %v", err)
		}
		if _, err := store.Load("../escape"); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("Expected ErrReportNotFound for path id, got %v", err)
		}
	})

	t.Run("Load Corrupt Report", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tempDir, "corrupt.json"), []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := store.Load("corrupt")
		if err == nil || errors.Is(err, ErrReportNotFound) {
			t.Errorf("Expected unmarshal error, got %v", err)
		}
	})

	t.Run("Save Invalid Report", func(t *testing.T) {
		if err := store.Save(nil); err == nil {
			t.Error("Expected error saving nil report")
		}
		if err := store.Save(&service.Report{}); !errors.Is(err, ErrInvalidReport) {
			t.Errorf("Expected ErrInvalidReport, got %v", err)
		}
		if err := store.Save(&service.Report{ID: "a/b"}); !errors.Is(err, ErrInvalidReport) {
			t.Errorf("Expected ErrInvalidReport for path id, got %v", err)
		}
	})
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	if _, err := NewFileStore(dir); err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("Expected reports directory to be created")
	}
}
