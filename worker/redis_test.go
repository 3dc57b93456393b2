package worker

import (
	"text2phenotype.com/hmmtagger/redis"
	"text2phenotype.com/hmmtagger/tasks"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

const storedTaggingTask = `{
	"document_id": "doc-1",
	"job_id": "job-1",
	"request_file_key": "requests/doc-1.json",
	"owner": "sequencer",
	"task_statuses": {
		"pos_tagger": {
			"started_at": "2020-01-01T00:00:00.000000+00:00",
			"completed_at": "2020-01-01T00:01:00.000000+00:00",
			"attempts": 1,
			"status": "failed",
			"error_messages": ["boom"]
		},
		"other_service": {"status": "completed - success"}
	}
}`

func applyTaskUpdate(t *testing.T, stored []byte, update func(*tasks.TaggingTask)) []byte {
	t.Helper()
	var taggingTask tasks.TaggingTask
	merged, err := redis.MergeDocument(stored, &taggingTask, func() {
		update(&taggingTask)
	})
	require.NoError(t, err)
	return merged
}

func TestTaskStatusUpdates(t *testing.T) {
	t.Run("Restart clears completion time", func(t *testing.T) {
		merged := applyTaskUpdate(t, []byte(storedTaggingTask), markStarted)

		var taggingTask tasks.TaggingTask
		require.NoError(t, json.Unmarshal(merged, &taggingTask))
		info := taggingTask.TaskStatuses.Tagger
		require.Nil(t, info.CompletedAt)
		require.Equal(t, tasks.TaskStatusStarted, info.Status)
		require.Equal(t, 2, info.Attempts)
		require.NotNil(t, info.StartedAt)
		require.NotEqual(t, "2020-01-01T00:00:00.000000+00:00", *info.StartedAt)
		require.Equal(t, []string{"boom"}, info.ErrorMessages)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(merged, &raw))
		require.Equal(t, "sequencer", raw["owner"])
		statuses := raw["task_statuses"].(map[string]interface{})
		require.Contains(t, statuses, "other_service")
		require.NotContains(t, statuses["pos_tagger"], "completed_at")
	})

	t.Run("Failure after restart records completion", func(t *testing.T) {
		started := applyTaskUpdate(t, []byte(storedTaggingTask), markStarted)
		merged := applyTaskUpdate(t, started, markFailed(errors.New("model missing")))

		var taggingTask tasks.TaggingTask
		require.NoError(t, json.Unmarshal(merged, &taggingTask))
		info := taggingTask.TaskStatuses.Tagger
		require.NotNil(t, info.CompletedAt)
		require.Equal(t, tasks.TaskStatusFailed, info.Status)
		require.Equal(t, 2, info.Attempts)
		require.Equal(t, []string{"boom", "model missing"}, info.ErrorMessages)
	})
}
