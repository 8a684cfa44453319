package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgsmith/nuspecgen/pkg/logger"
	"github.com/pkgsmith/nuspecgen/pkg/nuspec"
	"github.com/pkgsmith/nuspecgen/pkg/safeio"
)

// writeIfChanged serializes the manifest and writes it to path unless the
// file already holds identical bytes. Skipping the no-op write keeps build
// timestamps stable so incremental builds downstream are not perturbed.
// Returns whether a write happened.
func writeIfChanged(m *nuspec.Manifest, path string) (bool, error) {
	data, err := m.Bytes()
	if err != nil {
		return false, err
	}

	if existing, err := os.ReadFile(path); err == nil { // #nosec G304 -- output path is caller-supplied by design
		if bytes.Equal(existing, data) {
			logger.Info("manifest unchanged, skipping write", logger.String("path", path))
			return false, nil
		}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := safeio.WriteFilePreservePerms(path, data); err != nil {
		return false, fmt.Errorf("write manifest %s: %w", path, err)
	}
	logger.Info("manifest written", logger.String("path", path), logger.Int("bytes", len(data)))
	return true, nil
}
