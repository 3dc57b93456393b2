package pipeline

import (
	"text2phenotype.com/hmmtagger/logger"
	"text2phenotype.com/hmmtagger/pos"
	"text2phenotype.com/hmmtagger/types"
	"text2phenotype.com/hmmtagger/utils"
	"encoding/json"
	"fmt"
)

type Pipeline func(request Request) <-chan string

// ErrorsKey holds the configurations a request asked for but could not get.
const ErrorsKey = "errors"

type TaggingParams struct {
	// ConfigDir is where relative model paths are resolved from.
	ConfigDir      string                `json:"config_dir"`
	Configurations []types.Configuration `json:"configurations"`
	Downloader     ModelDownloader       `json:"-"`
}

type configPipeline struct {
	cfg        types.Configuration
	normalizer func(in <-chan types.Sentence) <-chan types.Sentence
	tagger     Tagger
}

func Tagging(params TaggingParams) (Pipeline, error) {
	pplnLogger := logger.NewLogger("Tagging pipeline")
	errLogger := pplnLogger.With().Caller().Logger()
	pplnLogger.Info().
		Interface("params", params).
		Msg("Starting tagging pipeline (see parameters in 'params' field)")

	if len(params.Configurations) == 0 {
		return nil, fmt.Errorf("no configurations to serve")
	}

	cache := NewModelCache(params.ConfigDir, params.Downloader)
	taggers := make(map[*pos.Model]Tagger)
	configs := make(map[string]configPipeline, len(params.Configurations))
	for _, cfg := range params.Configurations {
		model, err := cache.Get(cfg.Model)
		if err != nil {
			errLogger.Err(err).
				Str("config_name", cfg.Name).
				Interface("model", cfg.Model).
				Msg("Failed to load model")
			return nil, err
		}
		normalizer, err := NewUnicodeNormalizer(cfg.Normalization)
		if err != nil {
			errLogger.Err(err).Str("config_name", cfg.Name).Msg("Failed to create normalizer")
			return nil, err
		}
		tagger, ok := taggers[model]
		if !ok {
			// tags are interned before the store gets locked
			utils.GlobalStringStore().GetPointers(append(model.Tags.Tags(), pos.Unknown))
			tagger = NewPOSTagger(model)
			taggers[model] = tagger
		}
		configs[cfg.Name] = configPipeline{cfg: cfg, normalizer: normalizer, tagger: tagger}
	}
	pplnLogger.Info().
		Int("configurations", len(configs)).
		Int("models", cache.Len()).
		Msg("Models loaded")

	responseBuilder := NewTaggingResult()

	return func(request Request) <-chan string {
		responseChan := make(chan string, 1)
		reqLogger := pplnLogger.With().Str("tid", request.Tid).Logger()
		reqLogger.Info().Int("sentences", len(request.Sentences)).Msg("Started tagging pipeline")

		go func() {
			defer close(responseChan)
			response := make(map[string]interface{})
			selected, errs := selectConfigurations(params.Configurations, configs, request)

			in := make(chan types.Sentence)
			split := NewSentenceChannelSplitter(len(selected))(in)

			resultChannel := make(chan Result)
			for i, sel := range selected {
				normalized := sel.pipeline.normalizer(split[i])
				tagged := sel.pipeline.tagger(normalized, sel.method, sel.pipeline.cfg.CheckFeature(types.BaselineFeature))
				connect(responseBuilder(tagged, sel.pipeline.cfg, request, sel.method), resultChannel)
			}

			go func() {
				defer close(in)
				for i, tokens := range request.Sentences {
					in <- types.Sentence{Index: i, Tokens: types.NewTokens(tokens)}
				}
			}()

			for i := 0; i < len(selected); i++ {
				res := <-resultChannel
				reqLogger.Info().
					Str("config_name", res.ConfigName).
					Msg("Finished pipeline for configuration")
				response[res.ConfigName] = res.Data
			}
			if len(errs) > 0 {
				response[ErrorsKey] = errs
			}

			buf, err := json.Marshal(response)
			if err != nil {
				reqLogger.Err(err).Msg("Failed to marshall response")
			}
			reqLogger.Info().Msg("Finished tagging pipeline")
			responseChan <- string(buf)
		}()

		return responseChan
	}, nil
}

type selectedConfig struct {
	pipeline configPipeline
	method   pos.Method
}

// selectConfigurations picks the configurations named by the request, all of
// them when it names none, in configuration order.
func selectConfigurations(
	all []types.Configuration,
	configs map[string]configPipeline,
	request Request,
) ([]selectedConfig, []types.ErrorSection) {
	var errs []types.ErrorSection
	names := request.Configurations
	if len(names) == 0 {
		names = make([]string, len(all))
		for i, cfg := range all {
			names[i] = cfg.Name
		}
	}

	seen := make(map[string]bool, len(names))
	selected := make([]selectedConfig, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		cfgPipeline, ok := configs[name]
		if !ok {
			errs = append(errs, types.ErrorSection{Config: name, Message: "unknown configuration"})
			continue
		}
		methodName := request.Method
		if len(methodName) == 0 {
			methodName = cfgPipeline.cfg.RequestParams.Method
		}
		method, err := pos.ParseMethod(methodName)
		if err != nil {
			errs = append(errs, types.ErrorSection{Config: name, Message: err.Error()})
			continue
		}
		selected = append(selected, selectedConfig{pipeline: cfgPipeline, method: method})
	}
	return selected, errs
}

func connect(from <-chan Result, to chan<- Result) {
	go func() {
		for v := range from {
			to <- v
		}
	}()
}
