package focustrap

import "sync"

// Scheduler runs a task at some later point, typically the next tick of
// the host event loop.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(task func())

// Schedule calls f(task).
func (f SchedulerFunc) Schedule(task func()) {
	f(task)
}

// Immediate runs tasks synchronously. It is the default when no scheduler
// is supplied.
var Immediate Scheduler = SchedulerFunc(func(task func()) { task() })

// Queue collects tasks until Flush is called. A host event loop flushes
// the queue once pending rendering has settled.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

// Schedule appends a task to the queue.
func (q *Queue) Schedule(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Pending returns the number of queued tasks.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Flush runs all queued tasks in order and returns how many ran. Tasks
// scheduled while flushing run on the next Flush.
func (q *Queue) Flush() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, task := range tasks {
		task()
	}
	return len(tasks)
}
