package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"GoldPulse/internal/domain/models"
	drepo "GoldPulse/internal/domain/repository"
)

// bundle holds one loaded artifact triple.
type bundle struct {
	model   *Model
	scalerX *Scaler
	scalerY *Scaler
}

// Store loads artifact triples from the filesystem. Because artifacts
// never change for the life of the process, loaded bundles are kept in
// a process-wide map guarded by a mutex: each distinct path triple is
// read and parsed at most once, and every later request shares the
// same read-only handle.
type Store struct {
	mu      sync.Mutex
	bundles map[string]*bundle
	caching bool
}

// NewStore creates an artifact store. With caching disabled every
// request re-reads the files, the baseline behavior.
func NewStore(caching bool) drepo.ArtifactStore {
	return &Store{
		bundles: make(map[string]*bundle),
		caching: caching,
	}
}

// Load returns the model and scalers for the given paths. A missing
// file yields an ArtifactError with NotFound set; a present but
// unusable file yields one without.
func (s *Store) Load(modelPath, scalerXPath, scalerYPath string) (drepo.SequenceModel, drepo.FeatureScaler, drepo.TargetScaler, error) {
	key := modelPath + "|" + scalerXPath + "|" + scalerYPath

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.caching {
		if b, ok := s.bundles[key]; ok {
			return b.model, b.scalerX, b.scalerY, nil
		}
	}

	b, err := load(modelPath, scalerXPath, scalerYPath)
	if err != nil {
		return nil, nil, nil, err
	}

	if s.caching {
		s.bundles[key] = b
	}
	return b.model, b.scalerX, b.scalerY, nil
}

func load(modelPath, scalerXPath, scalerYPath string) (*bundle, error) {
	model, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}
	scalerX, err := loadScaler(scalerXPath)
	if err != nil {
		return nil, err
	}
	scalerY, err := loadScaler(scalerYPath)
	if err != nil {
		return nil, err
	}
	if scalerX.Columns() != model.Features {
		return nil, &models.ArtifactError{
			Path: scalerXPath,
			Err:  fmt.Errorf("feature scaler has %d columns, model expects %d", scalerX.Columns(), model.Features),
		}
	}
	return &bundle{model: model, scalerX: scalerX, scalerY: scalerY}, nil
}

func loadModel(path string) (*Model, error) {
	raw, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &models.ArtifactError{Path: path, Err: fmt.Errorf("parse model: %w", err)}
	}
	if err := m.validate(); err != nil {
		return nil, &models.ArtifactError{Path: path, Err: err}
	}
	return &m, nil
}

func loadScaler(path string) (*Scaler, error) {
	raw, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	var s Scaler
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &models.ArtifactError{Path: path, Err: fmt.Errorf("parse scaler: %w", err)}
	}
	if err := s.validate(); err != nil {
		return nil, &models.ArtifactError{Path: path, Err: err}
	}
	return &s, nil
}

func readArtifact(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &models.ArtifactError{Path: path, NotFound: true, Err: err}
		}
		return nil, &models.ArtifactError{Path: path, Err: err}
	}
	return raw, nil
}
