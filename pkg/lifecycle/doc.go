// Package lifecycle provides the start/stop state machine shared by the
// store and the client facade.
//
// # Usage
//
//	manager := lifecycle.NewManager("store", logger, nil)
//
//	if !manager.CanStart() {
//	    return lifecycle.ErrAlreadyRunning
//	}
//	if err := manager.TransitionTo(lifecycle.StateStarting, "starting"); err != nil {
//	    return err
//	}
//
//	manager.Go(func() {
//	    // ... loop until ctx is done ...
//	})
//
//	// Graceful shutdown
//	if err := manager.WaitWithTimeout(lifecycle.ShutdownTimeout); err != nil {
//	    return err
//	}
//
// # State Machine
//
// Valid state transitions:
//   - Stopped -> Starting
//   - Starting -> Running, Stopping, Crashed
//   - Running -> Stopping, Crashed
//   - Stopping -> Stopped, Crashed
//   - Crashed -> Starting
//
// [Backoff] implements exponential backoff with jitter and is used by the
// websocket adapter to pace reconnect attempts.
package lifecycle
