package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smy-101/gmarket/internal/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		setupFile func(t *testing.T, path string)
		wantErr   bool
		wantCount int
	}{
		{
			name: "file doesn't exist",
			setupFile: func(t *testing.T, path string) {
			},
			wantErr:   false,
			wantCount: 0,
		},
		{
			name: "file exists with valid data",
			setupFile: func(t *testing.T, path string) {
				records := []types.PackageRecord{
					{
						Name:        "block-pin",
						Author:      "Joodo",
						Dir:         "block-pin",
						IconURL:     "/icons/block-pin.png",
						CreatedAt:   "2024-08-27T16:41:22Z",
						LastUpdated: "2024-08-29T01:37:02Z",
					},
				}
				if err := Save(path, records); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
			},
			wantErr:   false,
			wantCount: 1,
		},
		{
			name: "file exists with multiple records",
			setupFile: func(t *testing.T, path string) {
				records := []types.PackageRecord{
					{Name: "pkg-a", Version: "1.0.0"},
					{Name: "pkg-b", Error: "No manifest.json"},
				}
				if err := Save(path, records); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
			},
			wantErr:   false,
			wantCount: 2,
		},
		{
			name: "file exists with malformed JSON",
			setupFile: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("{invalid json"), 0644); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
			},
			wantErr:   true,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, FileName)
			tt.setupFile(t, path)

			records, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if records == nil {
					t.Error("Load() returned nil slice, want empty slice")
				}
				if len(records) != tt.wantCount {
					t.Errorf("Load() returned %d records, want %d", len(records), tt.wantCount)
				}
			}
		})
	}
}

func TestSave(t *testing.T) {
	tests := []struct {
		name    string
		records []types.PackageRecord
		wantErr bool
	}{
		{
			name:    "save empty catalog",
			records: []types.PackageRecord{},
			wantErr: false,
		},
		{
			name: "save single record",
			records: []types.PackageRecord{
				{
					Name:        "block-pin",
					Description: "Pin blocks",
					Author:      "Joodo",
					Repo:        "joodo/logseq-plugin-pin",
					Version:     "1.0.0",
					Dir:         "block-pin",
					IconURL:     "/icons/block-pin.png",
					CreatedAt:   "2024-08-27T16:41:22Z",
					LastUpdated: "2024-08-29T01:37:02Z",
				},
			},
			wantErr: false,
		},
		{
			name: "save record order",
			records: []types.PackageRecord{
				{Name: "zulu"},
				{Name: "alpha"},
				{Name: "mike"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, FileName)

			err := Save(path, tt.records)
			if (err != nil) != tt.wantErr {
				t.Errorf("Save() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Save() failed to load saved data: %v", err)
			}
			if len(loaded) != len(tt.records) {
				t.Errorf("Save() saved %d records, want %d", len(loaded), len(tt.records))
			}
			for i, record := range loaded {
				if record != tt.records[i] {
					t.Errorf("Save() record[%d] = %+v, want %+v", i, record, tt.records[i])
				}
			}
		})
	}
}

func TestSaveNilRecords(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, FileName)

	if err := Save(path, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Save(nil) wrote %q, want an empty JSON array", string(data))
	}
}

func TestSaveAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, FileName)
	tmpPath := path + ".tmp"

	initialData := []byte("initial content")
	if err := os.WriteFile(path, initialData, 0644); err != nil {
		t.Fatalf("failed to create initial file: %v", err)
	}

	records := []types.PackageRecord{{Name: "block-pin"}}
	if err := Save(path, records); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
		t.Error("Save() temporary file was not cleaned up")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(data) == string(initialData) {
		t.Error("Save() did not update the file")
	}
}

func TestSaveMissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", FileName)

	err := Save(path, []types.PackageRecord{{Name: "block-pin"}})
	if err == nil {
		t.Error("Save() expected error for missing parent directory, got nil")
	}
}
