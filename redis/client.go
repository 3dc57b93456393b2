package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/bsm/redislock"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/go-redis/redis/v8"
	"github.com/kelseyhightower/envconfig"
	"time"
)

type DB int
type ReleaseLock func() error
type Error error

type Client struct {
	client         redis.UniversalClient
	lockExpiration time.Duration
}

var ctx = context.Background()

type Config struct {
	LockExpirationSeconds   int     `envconfig:"TAGGER_REDIS_LOCK_EXPIRATION" default:"3"`
	Host                    string  `envconfig:"TAGGER_REDIS_HOST" required:"true"`
	Port                    string  `envconfig:"TAGGER_REDIS_PORT" required:"true"`
	HASentinelPort          string  `envconfig:"TAGGER_REDIS_HA_SENTINEL_PORT" default:"26379"`
	HASentinelMasterName    string  `envconfig:"TAGGER_REDIS_HA_MASTER_NAME" default:"mymaster"`
	Password                string  `envconfig:"TAGGER_REDIS_AUTH_PASSWORD" default:"0"`
	AuthRequired            bool    `envconfig:"TAGGER_REDIS_AUTH_REQUIRED" default:"false"`
	HAMode                  bool    `envconfig:"TAGGER_REDIS_HA_MODE" default:"false"`
	HASentinelSocketTimeout float32 `envconfig:"TAGGER_REDIS_SOCKET_TIMEOUT" default:"0.5"`
}

func NewClient(db DB) (Client, error) {
	cfg, err := readEnvironment()
	if err != nil {
		return Client{}, err
	}
	var client redis.UniversalClient
	if cfg.HAMode {
		client = CreateFailoverClient(cfg, db)
	} else {
		client = CreateClient(cfg, db)
	}
	return Client{
		client:         client,
		lockExpiration: time.Duration(cfg.LockExpirationSeconds) * time.Second,
	}, nil
}

// NewClientFrom wraps an existing connection, used with miniature setups and tests.
func NewClientFrom(client redis.UniversalClient, lockExpiration time.Duration) Client {
	return Client{client: client, lockExpiration: lockExpiration}
}

func CreateFailoverClient(cfg *Config, db DB) *redis.ClusterClient {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.HASentinelPort)
	timeout := time.Duration(cfg.HASentinelSocketTimeout * float32(time.Second))
	options := redis.FailoverOptions{
		SentinelAddrs: []string{addr},
		ReadTimeout:   timeout,
		WriteTimeout:  timeout,
		MaxRetries:    6,
		DB:            int(db),
		MasterName:    cfg.HASentinelMasterName,
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewFailoverClusterClient(&options)
}

func CreateClient(cfg *Config, db DB) *redis.Client {
	options := redis.Options{
		Addr:       fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		MaxRetries: 6,
		DB:         int(db),
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewClient(&options)
}

func (client *Client) getRaw(redisKey string) ([]byte, error) {
	response := client.client.Get(ctx, redisKey)
	if response.Err() != nil {
		return nil, Error(response.Err())
	}
	return response.Bytes()
}

// GetDocument reads the JSON document stored at redisKey into doc. Fields doc
// does not declare are ignored.
func (client *Client) GetDocument(redisKey string, doc interface{}) error {
	raw, err := client.getRaw(redisKey)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", redisKey, err)
	}
	return nil
}

// UpdateDocument reads the document under a lock, lets update modify doc and
// writes back what update changed. Keys written by other services are kept.
func (client *Client) UpdateDocument(redisKey string, doc interface{}, update func()) (err error) {
	releaseLock, err := client.Lock(redisKey)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = releaseLock()
			return
		}
		err = releaseLock()
	}()

	raw, err := client.getRaw(redisKey)
	if err != nil {
		return err
	}
	merged, err := MergeDocument(raw, doc, update)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", redisKey, err)
	}
	return client.set(redisKey, merged)
}

// MergeDocument decodes raw into doc, runs update and applies the difference
// between doc before and after update to raw as a JSON merge patch. A field
// update clears is removed from the result even when doc omits empty fields.
func MergeDocument(raw []byte, doc interface{}, update func()) ([]byte, error) {
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	before, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if update != nil {
		update()
	}
	after, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(before, after)
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(raw, patch)
}

func (client *Client) Lock(redisKey string) (ReleaseLock, error) {
	lockCl := redislock.New(client.client)
	str := redislock.LimitRetry(redislock.LinearBackoff(time.Second), 20)
	lockKey := fmt.Sprintf("lock:%s", redisKey)
	lock, err := lockCl.Obtain(ctx, lockKey, client.lockExpiration, &redislock.Options{RetryStrategy: str})
	if err != nil {
		return nil, err
	}
	return func() error {
		return lock.Release(ctx)
	}, nil
}

func (client *Client) SaveDoc(redisKey string, document interface{}) error {
	b, err := json.Marshal(document)
	if err != nil {
		return err
	}
	return client.set(redisKey, b)
}

func (client *Client) set(redisKey string, b []byte) error {
	response := client.client.Set(ctx, redisKey, b, 0)
	if response.Err() != nil {
		return Error(response.Err())
	}
	return nil
}

func (client *Client) Close() error {
	return client.client.Close()
}

func readEnvironment() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
