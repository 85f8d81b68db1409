package collect

import (
	"context"
	"encoding/json"

	"github.com/smy-101/gmarket/internal/types"
)

// manifestFileName is the metadata document every package directory is
// expected to declare.
const manifestFileName = "manifest.json"

// FetchManifest retrieves and parses packages/<pkg>/manifest.json. It never
// returns (nil, nil): transport failures, non-success statuses and malformed
// JSON all come back as an error describing the cause. A package without a
// retrievable manifest degrades to an error record; it never aborts the run.
func (c *Client) FetchManifest(ctx context.Context, pkg string) (*types.PackageManifest, error) {
	data, err := c.FetchRaw(ctx, pkg, manifestFileName)
	if err != nil {
		return nil, &CollectError{
			Type:    ErrorTypeManifest,
			Package: pkg,
			Message: "failed to fetch manifest.json",
			Err:     err,
		}
	}

	var manifest types.PackageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &CollectError{
			Type:    ErrorTypeManifest,
			Package: pkg,
			Message: "failed to parse manifest.json",
			Err:     err,
		}
	}

	return &manifest, nil
}
