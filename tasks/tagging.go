package tasks

import (
	"text2phenotype.com/hmmtagger/redis"
)

const TaggingDB redis.DB = 2

// TaggingTask is the redis document describing one tagging request. Other
// services keep their own keys in the same document, updates only touch the
// fields declared here.
type TaggingTask struct {
	DocID          string              `json:"document_id"`
	JobID          string              `json:"job_id"`
	RequestFileKey string              `json:"request_file_key"`
	TaskStatuses   TaggingTaskStatuses `json:"task_statuses"`
}

type TaggingTaskStatuses struct {
	Tagger TaskInfo `json:"pos_tagger"`
}

type TaskInfo struct {
	ResultsFileKey string     `json:"results_file_key,omitempty"`
	StartedAt      *string    `json:"started_at,omitempty"`
	CompletedAt    *string    `json:"completed_at,omitempty"`
	Attempts       int        `json:"attempts"`
	Status         TaskStatus `json:"status"`
	ErrorMessages  []string   `json:"error_messages,omitempty"`
}

type TaggingTasks struct {
	client redis.Client
}

func (tasks TaggingTasks) Get(redisKey string) (*TaggingTask, error) {
	var task TaggingTask
	if err := tasks.client.GetDocument(redisKey, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks TaggingTasks) Update(redisKey string, updateFunc func(task *TaggingTask)) error {
	var task TaggingTask
	return tasks.client.UpdateDocument(redisKey, &task, func() {
		updateFunc(&task)
	})
}
