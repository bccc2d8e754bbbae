// Package effect bridges intent actions to external service calls.
//
// A [Pipeline] listens for one intent action type, invokes its service call
// exactly once per intent and maps the outcome to exactly one result action.
// Every call is wrapped in a [Result] whose [Kind] distinguishes:
//
//   - Succeeded: the call returned and Verify accepted the response.
//   - FailedLogical: the call returned but the response reports failure
//     (for example an embedded success flag of false).
//   - FailedService: the call returned an error.
//   - FailedGeneral: the pipeline panicked before a result was produced.
//
// Service failures raise an error alert with the pipeline's own message key;
// general failures raise one with [GeneralFailureKey]. Logical failures alert
// only when the pipeline opts in.
//
// A [Runner] subscribes to the store, spawns one goroutine per matching
// intent and dispatches the result. Concurrent intents of the same type run
// concurrently; their results reach the store in completion order.
package effect
