// Package workers runs the background jobs of the form service.
// A Worker blocks until its context is cancelled; Workers starts a set of
// them together and waits for all of them to stop.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run must block until ctx is cancelled and the worker has drained
// whatever it still owes.
//
// Example implementation:
//
//	type MyWorker struct{ jobs chan string }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    for {
//	        select {
//	        case <-ctx.Done():
//	            return
//	        case job := <-w.jobs:
//	            handle(job)
//	        }
//	    }
//	}
type Worker interface {
	Run(ctx context.Context)
}
