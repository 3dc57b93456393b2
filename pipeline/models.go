package pipeline

import (
	"text2phenotype.com/hmmtagger/logger"
	"text2phenotype.com/hmmtagger/pos"
	"text2phenotype.com/hmmtagger/types"
	"bytes"
	"fmt"
	"os"
	"path"
	"sync"
)

// ModelDownloader fetches model files from object storage.
type ModelDownloader interface {
	Download(key string) ([]byte, error)
}

// ModelCache keeps one model per location, configurations pointing to the same
// file share it.
type ModelCache struct {
	dir        string
	downloader ModelDownloader
	mu         sync.Mutex
	models     map[uint64]*pos.Model
}

// NewModelCache resolves relative model paths against dir. downloader may be
// nil, models are then only read from disk.
func NewModelCache(dir string, downloader ModelDownloader) *ModelCache {
	return &ModelCache{
		dir:        dir,
		downloader: downloader,
		models:     make(map[uint64]*pos.Model),
	}
}

func (cache *ModelCache) Get(mCfg types.ModelConfig) (*pos.Model, error) {
	key := mCfg.GetHashCode()

	cache.mu.Lock()
	defer cache.mu.Unlock()
	if model, ok := cache.models[key]; ok {
		return model, nil
	}

	model, err := cache.load(mCfg)
	if err != nil {
		return nil, err
	}
	cache.models[key] = model
	return model, nil
}

func (cache *ModelCache) Len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return len(cache.models)
}

func (cache *ModelCache) load(mCfg types.ModelConfig) (*pos.Model, error) {
	modelLogger := logger.NewLogger("Model loader").With().
		Str("model_path", mCfg.Path).
		Str("model_key", mCfg.Key).Logger()

	if len(mCfg.Path) > 0 {
		modelPath := mCfg.Path
		if !path.IsAbs(modelPath) {
			modelPath = path.Join(cache.dir, modelPath)
		}
		model, err := pos.LoadModelFromFile(modelPath)
		if err == nil {
			modelLogger.Info().Int("tags", model.Tags.Len()).Msg("Loaded model from disk")
			return model, nil
		}
		if !os.IsNotExist(err) || len(mCfg.Key) == 0 || cache.downloader == nil {
			return nil, err
		}
		modelLogger.Info().Msg("Model file is missing, downloading it")
	}

	if len(mCfg.Key) == 0 || cache.downloader == nil {
		return nil, fmt.Errorf("no way to load model %q", mCfg.Key)
	}
	buf, err := cache.downloader.Download(mCfg.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to download model %s: %w", mCfg.Key, err)
	}
	model, err := pos.ReadModel(bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	modelLogger.Info().Int("tags", model.Tags.Len()).Msg("Loaded model from storage")
	return model, nil
}
