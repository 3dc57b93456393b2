package worker

import (
	"text2phenotype.com/hmmtagger/tasks"
	"fmt"
)

type redisTransactions interface {
	getTaggingTask(redisKey string) (*tasks.TaggingTask, error)
	getJobTask(task *Task) (*tasks.JobTask, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	return wrapper.tasksClient.Tagging.Update(task.redisKey, markStarted)
}

// markStarted opens a new attempt, the previous attempt's completion time is
// removed.
func markStarted(taggingTask *tasks.TaggingTask) {
	info := &taggingTask.TaskStatuses.Tagger
	info.Status = tasks.TaskStatusStarted
	info.Attempts += 1
	info.StartedAt = getFormattedNow()
	info.CompletedAt = nil
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	return wrapper.tasksClient.Tagging.Update(task.redisKey, func(taggingTask *tasks.TaggingTask) {
		info := &taggingTask.TaskStatuses.Tagger
		info.Status = tasks.TaskStatusCanceled
		info.StartedAt = getFormattedNow()
		info.CompletedAt = getFormattedNow()
		info.Attempts += 1
		info.ErrorMessages = append(info.ErrorMessages, errorMessages...)
	})
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	return wrapper.tasksClient.Tagging.Update(task.redisKey, func(taggingTask *tasks.TaggingTask) {
		info := &taggingTask.TaskStatuses.Tagger
		info.Status = tasks.TaskStatusCompletedFailure
		info.StartedAt = getFormattedNow()
		info.CompletedAt = getFormattedNow()
		info.Attempts += 1
		info.ErrorMessages = append(
			info.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				info.Attempts,
				maxRetries,
			),
		)
	})
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Tagging.Update(task.redisKey, markFailed(err))
}

func markFailed(err error) func(taggingTask *tasks.TaggingTask) {
	return func(taggingTask *tasks.TaggingTask) {
		info := &taggingTask.TaskStatuses.Tagger
		info.Status = tasks.TaskStatusFailed
		info.CompletedAt = getFormattedNow()
		info.ErrorMessages = append(info.ErrorMessages, err.Error())
	}
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	return wrapper.tasksClient.Tagging.Update(task.redisKey, func(taggingTask *tasks.TaggingTask) {
		info := &taggingTask.TaskStatuses.Tagger
		if !info.Status.Complete() {
			info.Status = tasks.TaskStatusCompletedSuccess
		}
		info.CompletedAt = getFormattedNow()
		info.ResultsFileKey = getResultsFileKey(task)
	})
}

func (wrapper *redisClientWrapper) getTaggingTask(redisKey string) (*tasks.TaggingTask, error) {
	return wrapper.tasksClient.Tagging.Get(redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.Get(task.taggingTask.JobID)
}
