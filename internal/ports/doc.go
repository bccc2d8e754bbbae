// Package ports defines the interfaces that connect the feature layer to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//   - [Messaging]: topic subscriptions pushed by the server
//   - [CursorRepository]: persists the comic list sync position
//
// Feature packages depend only on these interfaces and their own service
// ports. Adapters (internal/adapters) provide the concrete HTTP, WebSocket
// and file system implementations.
package ports
