package async

import "context"

// Worker is a long running background job. Run must call done on return.
type Worker interface {
	Run(ctx context.Context, done func())
	Shutdown()
}
