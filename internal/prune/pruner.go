package prune

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/smy-101/gmarket/internal/catalog"
	"github.com/smy-101/gmarket/internal/icons"
)

// Report summarizes the results of a prune operation.
type Report struct {
	// IconsChecked is the total number of stored icon files examined.
	IconsChecked int
	// OrphansRemoved is the count of icon files deleted because no catalog
	// record references them.
	OrphansRemoved int
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// Logger defines the structured logging interface used by Pruner.
type Logger interface {
	// Debug logs a debug message with optional structured fields.
	Debug(msg string, fields ...Field)
	// Info logs an informational message with optional structured fields.
	Info(msg string, fields ...Field)
	// Warn logs a warning message with optional structured fields.
	Warn(msg string, fields ...Field)
	// Error logs an error message with the error object and optional structured fields.
	Error(msg string, err error, fields ...Field)
}

// NoOpLogger is a logger that discards all log messages.
// It is used as the default logger when no custom logger is provided.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, fields ...Field) {}

func (NoOpLogger) Info(msg string, fields ...Field) {}

func (NoOpLogger) Warn(msg string, fields ...Field) {}

func (NoOpLogger) Error(msg string, err error, fields ...Field) {}

// Pruner removes stored icon files that no record of the current catalog
// references. Collection runs overwrite the catalog but never touch icons
// of delisted packages, so those accumulate until pruned.
type Pruner struct {
	outputDir string
	logger    Logger
}

// NewPruner creates a new Pruner for the given output directory with a
// no-op logger.
func NewPruner(outputDir string) *Pruner {
	return &Pruner{
		outputDir: outputDir,
		logger:    NoOpLogger{},
	}
}

// NewPrunerWithLogger creates a new Pruner with a custom logger for observability.
func NewPrunerWithLogger(outputDir string, logger Logger) *Pruner {
	return &Pruner{
		outputDir: outputDir,
		logger:    logger,
	}
}

// Prune deletes every file in the icons directory that the current catalog
// does not reference. It refuses to run without a catalog file, since an
// absent catalog would classify every stored icon as orphaned. The
// operation can be cancelled via the provided context; the partial report
// is returned alongside the cancellation error.
func (p *Pruner) Prune(ctx context.Context) (*Report, error) {
	catalogPath := filepath.Join(p.outputDir, catalog.FileName)
	if _, err := os.Stat(catalogPath); err != nil {
		return nil, &PruneError{
			Type:    ErrorTypeCatalog,
			Message: fmt.Sprintf("no catalog at '%s', collect one first", catalogPath),
			Err:     err,
		}
	}

	records, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, &PruneError{
			Type:    ErrorTypeCatalog,
			Message: "failed to load catalog",
			Err:     err,
		}
	}

	referenced := make(map[string]struct{})
	for _, record := range records {
		if record.IconURL == "" {
			continue
		}
		referenced[path.Base(record.IconURL)] = struct{}{}
	}

	iconsDir := filepath.Join(p.outputDir, icons.DirName)
	entries, err := os.ReadDir(iconsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Report{}, nil
		}
		return nil, &PruneError{
			Type:    ErrorTypeFilesystem,
			Message: "failed to read icons directory",
			Err:     err,
		}
	}

	report := &Report{}
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return report, &PruneError{
				Type:    ErrorTypeFilesystem,
				Message: "operation cancelled",
				Err:     ctx.Err(),
			}
		default:
		}

		if entry.IsDir() {
			continue
		}
		report.IconsChecked++

		if _, ok := referenced[entry.Name()]; ok {
			continue
		}

		iconPath := filepath.Join(iconsDir, entry.Name())
		if err := os.Remove(iconPath); err != nil {
			p.logger.Error("Failed to remove orphaned icon", err,
				Field{Key: "path", Value: iconPath})
			continue
		}

		p.logger.Debug("Removed orphaned icon",
			Field{Key: "path", Value: iconPath})
		report.OrphansRemoved++
	}

	return report, nil
}
