package main

import (
	"text2phenotype.com/hmmtagger/api"
	"text2phenotype.com/hmmtagger/logger"
	"text2phenotype.com/hmmtagger/pipeline"
	"text2phenotype.com/hmmtagger/s3client"
	"text2phenotype.com/hmmtagger/types"
	"text2phenotype.com/hmmtagger/utils"
	"text2phenotype.com/hmmtagger/worker"
	"flag"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"io"
	"net/http"
	"os"
	"time"
)

type Config struct {
	ConfigPath      string `envconfig:"TAGGER_CONFIG_PATH"`
	RestAPIActive   bool   `envconfig:"TAGGER_REST_API_ACTIVE" default:"false"`
	RestAPIPort     string `envconfig:"TAGGER_REST_API_PORT" default:"10000"`
	WorkerActive    bool   `envconfig:"TAGGER_WORKER_ACTIVE" default:"true"`
	S3Enabled       bool   `envconfig:"TAGGER_S3_ENABLED" default:"false"`
	RequestDefaults string `envconfig:"TAGGER_REQUEST_DEFAULTS"`

	TrainPath string `envconfig:"TAGGER_TRAIN_PATH"`
	DevPath   string `envconfig:"TAGGER_DEV_PATH"`
	ModelPath string `envconfig:"TAGGER_MODEL_PATH" default:"model.json"`
	ModelKey  string `envconfig:"TAGGER_MODEL_KEY"`
}

const pipelineStartMaxRetries = 5

func main() {
	train := flag.Bool("train", false, "fit a model from TAGGER_TRAIN_PATH and exit")
	wrap := flag.Bool("wrap", false, "run as a child process and supervise its logs")
	flag.Parse()

	if *wrap {
		args := make([]string, 0, len(os.Args))
		for _, arg := range os.Args[1:] {
			if arg != "-wrap" && arg != "--wrap" {
				args = append(args, arg)
			}
		}
		os.Exit(logger.WrapProcess(os.Args[0], args...))
	}

	logger.SetupLogging()
	mainLogger := logger.NewLogger("Main")
	fatalErrLogger := mainLogger.Fatal().Caller()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	var s3Client *s3client.Client
	if config.S3Enabled {
		client, err := s3client.New()
		if err != nil {
			fatalErrLogger.Err(err).Msg("Failed to create S3 client")
			os.Exit(1)
		}
		defer client.Close()
		s3Client = client
	}

	if *train {
		runTraining(config, s3Client)
		return
	}

	if len(config.ConfigPath) == 0 {
		fatalErrLogger.Msg("TAGGER_CONFIG_PATH is required to serve")
		os.Exit(1)
	}

	//Load Pipeline
	pipelineChannel := make(chan pipeline.Pipeline)
	go func() {
		for retry := 0; retry < pipelineStartMaxRetries; retry++ {
			cfgs, err := types.LoadConfigurations(config.ConfigPath)
			if err != nil {
				mainLogger.Err(err).Msg("Failed to load configurations. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			mainLogger.Info().Msgf("Loaded %d configurations", len(cfgs))
			mainLogger.Info().Msg("Starting models loading")

			params := pipeline.TaggingParams{
				ConfigDir:      config.ConfigPath,
				Configurations: cfgs,
			}
			if s3Client != nil {
				params.Downloader = s3Client
			}
			ppln, err := pipeline.Tagging(params)
			if err != nil {
				mainLogger.Err(err).Msg("Failed to start tagging pipeline. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			utils.GlobalStringStore().Lock()
			mainLogger.Info().Msg("Pipelines loaded")
			pipelineChannel <- ppln
			return
		}
		fatalErrLogger.Msgf("Could not start pipelines after %d retries, exiting", pipelineStartMaxRetries)
		os.Exit(1)
	}()

	// block until pipeline loads
	ppln := <-pipelineChannel

	apiDone := make(chan struct{})
	if config.RestAPIActive {
		go func() {
			defer close(apiDone)
			mainLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Pipeline: ppln,
				Defaults: []byte(config.RequestDefaults),
			}
			http.HandleFunc("/", apiRequest.ProcessData)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			mainLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	if !config.WorkerActive {
		if !config.RestAPIActive {
			fatalErrLogger.Msg("Neither the worker nor the REST API is active, nothing to do")
			os.Exit(1)
		}
		<-apiDone
		return
	}

	mainLogger.Info().Msg("Start tagging worker")
	for {
		rmqWorker, err := worker.New(ppln, []byte(config.RequestDefaults))
		if err != nil {
			mainLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			mainLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}

func runTraining(config Config, s3Client *s3client.Client) {
	mainLogger := logger.NewLogger("Main")
	if len(config.TrainPath) == 0 {
		mainLogger.Fatal().Msg("TAGGER_TRAIN_PATH is required for training")
		os.Exit(1)
	}

	params := pipeline.TrainParams{
		TrainPath: config.TrainPath,
		DevPath:   config.DevPath,
		ModelPath: config.ModelPath,
		ModelKey:  config.ModelKey,
	}
	if s3Client != nil {
		params.Uploader = func(body io.Reader, key string) error {
			_, err := s3Client.UploadFrom(body, key)
			return err
		}
	}

	report, err := pipeline.Train(params)
	if err != nil {
		mainLogger.Fatal().Err(err).Msg("Training failed")
		os.Exit(1)
	}
	mainLogger.Info().Interface("report", report).Msg("Training finished")
}
