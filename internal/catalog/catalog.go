package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/smy-101/gmarket/internal/types"
)

// FileName is the catalog artifact written into the output directory.
const FileName = "packages.json"

// Load reads a previously built catalog. A missing file yields an empty
// catalog, not an error.
func Load(path string) ([]types.PackageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.PackageRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var records []types.PackageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	return records, nil
}

// Save overwrites the catalog at path with the given records as indented
// JSON. The write goes through a temporary file and a rename, so a reader
// never observes a half-written catalog. The parent directory must already
// exist.
func Save(path string, records []types.PackageRecord) error {
	if records == nil {
		// A nil slice would serialize as JSON null instead of [].
		records = []types.PackageRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary catalog file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename catalog file: %w", err)
	}

	return nil
}
