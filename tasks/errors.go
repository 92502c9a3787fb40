package tasks

import "errors"

var (
	// ErrResolverRequired is returned when a strategy resolver is not provided.
	ErrResolverRequired = errors.New("strategy resolver required")

	// ErrOrchestratorRequired is returned when an orchestrator is not provided.
	ErrOrchestratorRequired = errors.New("orchestrator required")

	// ErrDatasetBusy is returned when submitting a dataset that already has
	// an active task. At most one task per dataset runs at a time.
	ErrDatasetBusy = errors.New("dataset already has an active task")

	// ErrSchedulerClosed is returned when submitting to a released scheduler.
	ErrSchedulerClosed = errors.New("scheduler is closed")

	// ErrIncompleteRequest is returned when a request is missing its
	// namespace, project, or dataset name.
	ErrIncompleteRequest = errors.New("request requires namespace, project and dataset")

	// ErrTaskNotDone is returned when asking for the result of a task that
	// is still queued or running.
	ErrTaskNotDone = errors.New("task has not finished")
)
