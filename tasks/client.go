package tasks

import (
	"text2phenotype.com/hmmtagger/redis"
)

type Client struct {
	Tagging TaggingTasks
	Jobs    JobTasks
}

// NewClient is a preferred way for working with TaskInfos
func NewClient() (Client, error) {
	taggingRedisClient, err := redis.NewClient(TaggingDB)
	if err != nil {
		return Client{}, err
	}
	jobsRedisClient, err := redis.NewClient(JobsDB)
	if err != nil {
		_ = taggingRedisClient.Close()
		return Client{}, err
	}
	return Client{
		Tagging: TaggingTasks{client: taggingRedisClient},
		Jobs:    JobTasks{client: jobsRedisClient},
	}, nil
}

func (client *Client) Close() {
	_ = client.Tagging.client.Close()
	_ = client.Jobs.client.Close()
}
