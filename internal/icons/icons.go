package icons

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/smy-101/gmarket/internal/types"
)

// DirName is the subdirectory of the output directory icons are stored in.
const DirName = "icons"

// iconSize is the edge length stored raster icons are normalized to.
const iconSize = 32

// Fetcher downloads one file from a package's directory.
type Fetcher interface {
	FetchRaw(ctx context.Context, pkg, file string) ([]byte, error)
}

// Materializer downloads package icons and stores normalized local copies.
// SVG icons are stored byte for byte; every other format is resized to
// iconSize and re-encoded as PNG, whatever the source format was.
type Materializer struct {
	fetcher Fetcher
	dir     string
}

// NewMaterializer creates a materializer writing into dir. The directory is
// created on first use.
func NewMaterializer(fetcher Fetcher, dir string) *Materializer {
	return &Materializer{
		fetcher: fetcher,
		dir:     dir,
	}
}

// Materialize stores a local copy of the icon the manifest declares and
// returns the web-root-relative path it will be served under. It returns
// ("", nil) without fetching anything when the manifest declares no icon,
// and ("", err) on any download or transform failure — the caller degrades
// the record's icon URL to empty instead of failing the package.
func (m *Materializer) Materialize(ctx context.Context, manifest *types.PackageManifest, pkg string) (string, error) {
	if manifest.Icon == "" {
		return "", nil
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create icons directory: %w", err)
	}

	data, err := m.fetcher.FetchRaw(ctx, pkg, manifest.Icon)
	if err != nil {
		return "", fmt.Errorf("failed to download icon '%s': %w", manifest.Icon, err)
	}

	if strings.EqualFold(filepath.Ext(manifest.Icon), ".svg") {
		name := pkg + ".svg"
		if err := os.WriteFile(filepath.Join(m.dir, name), data, 0644); err != nil {
			return "", fmt.Errorf("failed to write icon file: %w", err)
		}
		return m.servedPath(name), nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode icon '%s': %w", manifest.Icon, err)
	}

	thumb := imaging.Resize(img, iconSize, iconSize, imaging.Lanczos)

	name := pkg + ".png"
	if err := imaging.Save(thumb, filepath.Join(m.dir, name)); err != nil {
		return "", fmt.Errorf("failed to write icon file: %w", err)
	}
	return m.servedPath(name), nil
}

// servedPath is where a static file server rooted at the output directory
// exposes the icon.
func (m *Materializer) servedPath(name string) string {
	return "/" + path.Join(filepath.Base(m.dir), name)
}
