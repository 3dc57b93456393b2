package types

import (
	"text2phenotype.com/hmmtagger/logger"
	"text2phenotype.com/hmmtagger/utils"
	"fmt"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
)

const (
	MethodViterbi = "viterbi"
	MethodGreedy  = "greedy"

	// unicode normalization of incoming tokens
	NormalizationNone = ""
	NormalizationNFC  = "nfc"
	NormalizationNFKC = "nfkc"

	// features
	ScoresFeature   = "scores"
	BaselineFeature = "baseline"
)

type RequestParams struct {
	Method string `yaml:"method" json:"method"`
}

func (rParams RequestParams) IsEmpty() bool {
	return len(rParams.Method) == 0
}

func (rParams RequestParams) GetHashCode() uint64 {
	if rParams.Method == "" {
		rParams.Method = MethodViterbi
	}
	return utils.HashString(strings.ToLower(rParams.Method))
}

type ModelConfig struct {
	Path string `yaml:"model_path" json:"model_path"`
	Key  string `yaml:"model_key" json:"model_key"`
}

// GetHashCode identifies the model location, configurations pointing to the
// same model share one loaded instance.
func (mCfg ModelConfig) GetHashCode() uint64 {
	return utils.HashString(mCfg.Path + "|" + mCfg.Key)
}

type Configuration struct {
	Name          string        `json:"name"`
	FilePath      string        `json:"file_path"`
	RequestParams RequestParams `yaml:"request_params" json:"request_params"`
	Model         ModelConfig   `yaml:"model" json:"model"`
	Normalization string        `yaml:"normalization" json:"normalization"`
	Features      []string      `yaml:"features" json:"features"`
}

func (cfg Configuration) CheckFeature(featureName string) bool {
	for _, feat := range cfg.Features {
		if feat == featureName {
			return true
		}
	}

	return false
}

func (cfg Configuration) Validate() error {
	switch strings.ToLower(cfg.Normalization) {
	case NormalizationNone, NormalizationNFC, NormalizationNFKC:
	default:
		return fmt.Errorf("unsupported normalization %q", cfg.Normalization)
	}

	switch strings.ToLower(cfg.RequestParams.Method) {
	case "", MethodViterbi, MethodGreedy:
	default:
		return fmt.Errorf("unsupported decoding method %q", cfg.RequestParams.Method)
	}

	for _, feat := range cfg.Features {
		if feat != ScoresFeature && feat != BaselineFeature {
			return fmt.Errorf("unsupported feature %q", feat)
		}
	}

	if len(cfg.Model.Path) == 0 && len(cfg.Model.Key) == 0 {
		return fmt.Errorf("configuration %s has no model location", cfg.Name)
	}

	return nil
}

func LoadConfigurations(dirPath string) ([]Configuration, error) {
	cfgLogger := logger.NewLogger("LoadConfigurations")

	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.FileInfo) {
			defer wg.Done()
			cfg := Configuration{
				Name:     strings.Split(file.Name(), ".yaml")[0],
				FilePath: path.Join(dirPath, file.Name()),
			}
			buf, err := ioutil.ReadFile(cfg.FilePath)
			if err != nil {
				cfgLogger.Err(err).Str("file_path", cfg.FilePath).Msg("Failed to read configuration")
				return
			}
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				cfgLogger.Err(err).Str("file_path", cfg.FilePath).Msg("Failed to parse configuration")
				return
			}

			if err := cfg.Validate(); err != nil {
				cfgLogger.Err(err).Str("file_path", cfg.FilePath).Msg("Skipping invalid configuration")
				return
			}

			configChan <- cfg
		}(f)
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs := make([]Configuration, 0, len(configChan))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].Name < configs[j].Name
	})
	return configs, nil
}
