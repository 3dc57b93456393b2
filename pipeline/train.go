package pipeline

import (
	"text2phenotype.com/hmmtagger/evaluation"
	"text2phenotype.com/hmmtagger/logger"
	"text2phenotype.com/hmmtagger/pos"
	"text2phenotype.com/hmmtagger/types"
	"fmt"
	"io"
	"os"
)

// ModelUploader stores a serialized model under key.
type ModelUploader func(body io.Reader, key string) error

type TrainParams struct {
	TrainPath string `json:"train_path"`
	DevPath   string `json:"dev_path"`
	ModelPath string `json:"model_path"`
	ModelKey  string `json:"model_key"`

	Uploader ModelUploader `json:"-"`
}

type TrainingReport struct {
	Sentences  int                              `json:"sentences"`
	Tokens     int                              `json:"tokens"`
	Tags       int                              `json:"tags"`
	Vocabulary int                              `json:"vocabulary"`
	Scores     map[pos.Method]evaluation.Scores `json:"scores,omitempty"`
}

var trainMethods = []pos.Method{pos.MethodGreedy, pos.MethodViterbi}

// Train fits a model on the training set, scores both decoders on the dev set
// when one is given and stores the model.
func Train(params TrainParams) (TrainingReport, error) {
	trainLogger := logger.NewLogger("Training")
	trainLogger.Info().Interface("params", params).Msg("Starting training")

	var report TrainingReport
	train, err := types.LoadDatasetFromFile(params.TrainPath)
	if err != nil {
		trainLogger.Err(err).Str("train_path", params.TrainPath).Msg("Failed to load training set")
		return report, err
	}

	model, err := pos.Fit(train)
	if err != nil {
		trainLogger.Err(err).Msg("Failed to fit model")
		return report, err
	}
	report.Sentences = len(train)
	for _, sent := range train {
		report.Tokens += sent.Len()
	}
	report.Tags = model.Tags.Len()
	report.Vocabulary = len(model.Vocabulary)
	trainLogger.Info().
		Int("sentences", report.Sentences).
		Int("tokens", report.Tokens).
		Int("tags", report.Tags).
		Int("vocabulary", report.Vocabulary).
		Msg("Model fitted")

	if len(params.DevPath) > 0 {
		dev, err := types.LoadDatasetFromFile(params.DevPath)
		if err != nil {
			trainLogger.Err(err).Str("dev_path", params.DevPath).Msg("Failed to load dev set")
			return report, err
		}
		report.Scores = make(map[pos.Method]evaluation.Scores, len(trainMethods))
		for _, method := range trainMethods {
			preds, err := model.DecodeAll(dev.Tokens(), method)
			if err != nil {
				return report, err
			}
			scores, err := evaluation.Evaluate(dev.Tags(), preds)
			if err != nil {
				trainLogger.Err(err).Str("method", string(method)).Msg("Failed to evaluate")
				return report, err
			}
			report.Scores[method] = scores
			trainLogger.Info().
				Str("method", string(method)).
				Float64("sentence_accuracy", scores.Sentence).
				Float64("token_accuracy", scores.Token).
				Msg("Dev set scores")
		}
	}

	if len(params.ModelPath) > 0 {
		if err := model.SaveToFile(params.ModelPath); err != nil {
			trainLogger.Err(err).Str("model_path", params.ModelPath).Msg("Failed to save model")
			return report, err
		}
		trainLogger.Info().Str("model_path", params.ModelPath).Msg("Saved model")
	}

	if len(params.ModelKey) > 0 {
		if params.Uploader == nil {
			return report, fmt.Errorf("model key %s is set but there is no storage to upload to", params.ModelKey)
		}
		if err := uploadModel(model, params, params.Uploader); err != nil {
			trainLogger.Err(err).Str("model_key", params.ModelKey).Msg("Failed to upload model")
			return report, err
		}
		trainLogger.Info().Str("model_key", params.ModelKey).Msg("Uploaded model")
	}
	return report, nil
}

func uploadModel(model *pos.Model, params TrainParams, upload ModelUploader) error {
	if len(params.ModelPath) > 0 {
		f, err := os.Open(params.ModelPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return upload(f, params.ModelKey)
	}

	r, w := io.Pipe()
	go func() {
		_ = w.CloseWithError(model.Write(w))
	}()
	err := upload(r, params.ModelKey)
	_ = r.Close()
	return err
}
