package tasks

import (
	"encoding/json"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestTaskStatus(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusCompletedSuccess, TaskStatusCompletedFailure, TaskStatusCanceled} {
		require.True(t, s.Complete(), s)
		require.False(t, s.Submitted(), s)
	}
	for _, s := range []TaskStatus{TaskStatusSubmitted, TaskStatusStarted, TaskStatusProcessing} {
		require.False(t, s.Complete(), s)
		require.True(t, s.Submitted(), s)
	}
	require.False(t, TaskStatusFailed.Complete())
}

func TestTaggingTaskJSON(t *testing.T) {
	var task TaggingTask
	require.NoError(t, json.Unmarshal([]byte(`{
		"document_id": "doc",
		"job_id": "job",
		"request_file_key": "requests/doc.json",
		"unknown_field": 1,
		"task_statuses": {"pos_tagger": {"status": "submitted", "attempts": 2}, "other": {}}
	}`), &task))
	require.Equal(t, "job", task.JobID)
	require.Equal(t, TaskStatusSubmitted, task.TaskStatuses.Tagger.Status)
	require.Equal(t, 2, task.TaskStatuses.Tagger.Attempts)
	require.Nil(t, task.TaskStatuses.Tagger.StartedAt)

	b, err := json.Marshal(task.TaskStatuses.Tagger)
	require.NoError(t, err)
	require.JSONEq(t, `{"attempts": 2, "status": "submitted"}`, string(b))
}
