package worker

import "context"

// Job is a unit of background work run off the request path, such as
// publishing an assessment-completed notification.
type Job func(ctx context.Context) error
