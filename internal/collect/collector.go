package collect

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smy-101/gmarket/internal/catalog"
	"github.com/smy-101/gmarket/internal/icons"
	"github.com/smy-101/gmarket/internal/types"
)

// manifestMissing is the error text recorded for packages without a
// retrievable manifest.json.
const manifestMissing = "No manifest.json"

// Options carries the full configuration of one collection run. Everything
// is passed in explicitly; no component reads the environment on its own.
type Options struct {
	Token     string
	Proxy     string
	Owner     string
	Repo      string
	Branch    string
	OutputDir string
	// Limit caps the number of records collected. Zero means no cap.
	Limit int
}

// iconStore materializes a package icon and returns its served path.
type iconStore interface {
	Materialize(ctx context.Context, manifest *types.PackageManifest, pkg string) (string, error)
}

// Collector aggregates the marketplace catalog: one listing call, then per
// directory entry a manifest fetch, a history fetch and an optional icon
// materialization, strictly sequential in listing order.
type Collector struct {
	client *Client
	icons  iconStore
	opts   Options
}

// Report summarizes a finished collection run.
type Report struct {
	// Listed is the number of entries the package listing returned,
	// directories or not.
	Listed int
	// Collected is the number of records written, error records included.
	Collected int
	// Errored is the number of records carrying an error field.
	Errored int
	// Skipped is the number of directory entries dropped because their
	// assembly failed unexpectedly.
	Skipped int
	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// New creates a Collector for the marketplace repository described by opts.
func New(opts Options) *Collector {
	client := NewClient(opts)
	return &Collector{
		client: client,
		icons:  icons.NewMaterializer(client, filepath.Join(opts.OutputDir, icons.DirName)),
		opts:   opts,
	}
}

// Run executes one full collection: validate the output directory, fetch the
// package listing, collect one record per directory entry and write the
// catalog file. The two failure modes before the loop — missing output
// directory and listing fetch failure — are fatal and leave no output
// behind; everything after degrades per package.
func (c *Collector) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	if info, err := os.Stat(c.opts.OutputDir); err != nil || !info.IsDir() {
		return nil, &CollectError{
			Type:    ErrorTypeOutput,
			Message: fmt.Sprintf("output directory '%s' does not exist", c.opts.OutputDir),
			Err:     err,
		}
	}

	listings, err := c.client.ListPackages(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("entries", len(listings)).
		Str("repo", fmt.Sprintf("%s/%s", c.opts.Owner, c.opts.Repo)).
		Msg("Fetched package listing")

	report := &Report{Listed: len(listings)}
	records := make([]types.PackageRecord, 0, len(listings))

	for record, err := range c.Records(ctx, listings) {
		if err != nil {
			log.Error().Err(err).Msg("Skipping package")
			report.Skipped++
			continue
		}

		records = append(records, *record)
		if record.Error != "" {
			report.Errored++
		}

		if c.opts.Limit > 0 && len(records) >= c.opts.Limit {
			log.Debug().Int("limit", c.opts.Limit).Msg("Record cap reached, stopping early")
			break
		}
	}

	outPath := filepath.Join(c.opts.OutputDir, catalog.FileName)
	if err := catalog.Save(outPath, records); err != nil {
		return nil, &CollectError{Type: ErrorTypeOutput, Message: "failed to write catalog", Err: err}
	}

	report.Collected = len(records)
	report.Duration = time.Since(start)

	log.Info().
		Int("records", report.Collected).
		Str("path", outPath).
		Msg("Catalog written")

	return report, nil
}

// Records returns a lazy sequence over the catalog records of the given
// listing: one record per type == "dir" entry, in listing order, paired
// with a nil error; an entry whose assembly fails unexpectedly is paired
// with the failure instead of a record. The sequence is finite, single-use,
// and stops fetching as soon as the consumer stops ranging.
func (c *Collector) Records(ctx context.Context, listings []types.GitHubContent) iter.Seq2[*types.PackageRecord, error] {
	return func(yield func(*types.PackageRecord, error) bool) {
		for _, entry := range listings {
			if entry.Type != "dir" {
				log.Debug().
					Str("entry", entry.Name).
					Str("type", entry.Type).
					Msg("Skipping non-directory entry")
				continue
			}

			if !yield(c.buildRecord(ctx, entry)) {
				return
			}
		}
	}
}

// buildRecord assembles the catalog record for one directory entry. A panic
// anywhere during assembly is recovered and returned as an error, which
// drops the entry from the catalog entirely — deliberately different from a
// missing manifest, which still contributes an error record.
func (c *Collector) buildRecord(ctx context.Context, entry types.GitHubContent) (rec *types.PackageRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("failed to process package '%s': %v", entry.Name, r)
		}
	}()

	logger := log.With().Str("package", entry.Name).Logger()
	logger.Debug().Msg("Collecting package")

	manifest, manifestErr := c.client.FetchManifest(ctx, entry.Name)

	dates, datesErr := c.client.FetchCommitDates(ctx, entry.Name)
	if datesErr != nil {
		// Degrades to empty dates; the record carries no trace of this.
		logger.Warn().Err(datesErr).Msg("Commit history unavailable")
	}

	if manifestErr != nil {
		logger.Warn().Err(manifestErr).Msg("No manifest.json, recording error entry")
		return &types.PackageRecord{
			Name:        entry.Name,
			IconURL:     "",
			CreatedAt:   dates.CreatedAt,
			LastUpdated: dates.LastUpdated,
			Error:       manifestMissing,
		}, nil
	}

	iconURL, iconErr := c.icons.Materialize(ctx, manifest, entry.Name)
	if iconErr != nil {
		// Degrades to an empty icon URL on the record.
		logger.Warn().Err(iconErr).Msg("Icon unavailable")
		iconURL = ""
	}

	name := manifest.Name
	if name == "" {
		name = entry.Name
	}

	return &types.PackageRecord{
		Name:        name,
		ID:          manifest.ID,
		Description: manifest.Description,
		Author:      manifest.Author,
		Repo:        manifest.Repo,
		Version:     manifest.Version,
		Dir:         entry.Name,
		IconURL:     iconURL,
		CreatedAt:   dates.CreatedAt,
		LastUpdated: dates.LastUpdated,
	}, nil
}
