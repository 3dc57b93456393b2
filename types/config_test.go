package types

import (
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"path"
	"testing"
)

func writeFile(t *testing.T, dir string, name string, content string) {
	t.Helper()
	require.NoError(t, ioutil.WriteFile(path.Join(dir, name), []byte(content), 0644))
}

func TestLoadConfigurations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", `
model:
  model_path: models/da.json
features:
  - scores
`)
	writeFile(t, dir, "baseline.yaml", `
request_params:
  method: greedy
model:
  model_path: models/da.json
  model_key: models/da.json
normalization: nfkc
features:
  - baseline
`)
	writeFile(t, dir, "broken.yaml", `
model:
  model_path: models/da.json
normalization: nfd
`)
	writeFile(t, dir, "nomodel.yaml", "features: [scores]\n")
	writeFile(t, dir, "README.md", "not a configuration")

	configs, err := LoadConfigurations(dir)
	require.NoError(t, err)
	require.Len(t, configs, 2)

	require.Equal(t, "baseline", configs[0].Name)
	require.Equal(t, MethodGreedy, configs[0].RequestParams.Method)
	require.Equal(t, NormalizationNFKC, configs[0].Normalization)
	require.True(t, configs[0].CheckFeature(BaselineFeature))
	require.False(t, configs[0].CheckFeature(ScoresFeature))
	require.Equal(t, path.Join(dir, "baseline.yaml"), configs[0].FilePath)

	require.Equal(t, "default", configs[1].Name)
	require.True(t, configs[1].RequestParams.IsEmpty())
	require.Equal(t, "models/da.json", configs[1].Model.Path)
	require.Equal(t, configs[0].Model.Path, configs[1].Model.Path)
	require.NotEqual(t, configs[0].Model.GetHashCode(), configs[1].Model.GetHashCode())

	_, err = LoadConfigurations(path.Join(dir, "missing"))
	require.Error(t, err)
}

func TestRequestParamsHash(t *testing.T) {
	require.Equal(t, RequestParams{}.GetHashCode(), RequestParams{Method: "Viterbi"}.GetHashCode())
	require.NotEqual(t, RequestParams{}.GetHashCode(), RequestParams{Method: MethodGreedy}.GetHashCode())
}

func TestConfigurationValidate(t *testing.T) {
	cfg := Configuration{Name: "c", Model: ModelConfig{Key: "models/x.json"}}
	require.NoError(t, cfg.Validate())

	cfg.RequestParams.Method = "beam"
	require.Error(t, cfg.Validate())

	cfg.RequestParams.Method = MethodViterbi
	cfg.Features = []string{"lemmas"}
	require.Error(t, cfg.Validate())
}
