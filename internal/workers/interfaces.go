// Package workers runs the client's background jobs.
//
// It defines the Worker interface, a Workers aggregate that starts and stops
// several workers in a unified way, and [PersistQueue], the single-writer
// queue that writes entity-store snapshots to device storage.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns immediately; the work happens on
// goroutines owned by the worker. Stop finishes outstanding work and blocks
// until those goroutines have exited.
type Worker interface {
	Run()
	Stop()
}
