package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"pomo/internal/modules/notify/domain"
	notifyout "pomo/internal/modules/notify/port/out"
)

// FileManifestStore reads <dataDir>/plugins/plugins.json. A missing file
// means no notifiers are installed, which is the common case. Manifests come
// back sorted by name so doctor output and broadcast order are stable across
// runs.
type FileManifestStore struct {
	basePath string
	path     string
}

func NewFileManifestStore(basePath string) notifyout.ManifestStore {
	return &FileManifestStore{basePath: basePath, path: filepath.Join(basePath, "plugins", "plugins.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("open notifier manifest store: %w", err)
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	var manifests []domain.Manifest
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode notifier manifests: %w", err)
	}
	for i := range manifests {
		manifests[i].Binary = s.resolveBinary(manifests[i].Binary)
	}
	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].Name < manifests[j].Name
	})
	return manifests, nil
}

// resolveBinary anchors relative binary paths at the data directory, so a
// manifest can ship alongside its binary and be moved as one unit.
func (s *FileManifestStore) resolveBinary(binary string) string {
	if binary == "" || filepath.IsAbs(binary) {
		return binary
	}
	return filepath.Clean(filepath.Join(s.basePath, binary))
}
