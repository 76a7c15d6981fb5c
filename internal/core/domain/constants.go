package domain

import "time"

// MaxWorkerTitle bounds how much of a task's title the dashboard renders
// for each worker cell.
const MaxWorkerTitle = 32

// SchedulerTickInterval is how often the Scheduler's main loop wakes to
// reassign tasks and re-render the dashboard.
const SchedulerTickInterval = 80 * time.Millisecond
