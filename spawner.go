package wef

// Spawner executes one deferred unit of work per asynchronous dispatch.
// The host supplies it at registry construction time; typical
// implementations hand the task to a goroutine, a worker pool or an event
// loop:
//
//	func(task func()) { go task() }
//
// The bridge never runs the task on the dispatch goroutine and never
// blocks waiting for it.
type Spawner func(task func())
