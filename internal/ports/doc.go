// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [UnitLocator]: Discovers checkpoint units under a root directory
//   - [JobRunner]: Executes one replay invocation with output capture
//   - [SinkFactory]: Creates per-unit capture destinations
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement these interfaces
// with concrete implementations (file system, os/exec, zerolog, etc.).
//
// This separation enables:
//   - Testing application logic with mock implementations
//   - Swapping infrastructure without changing business logic
//   - Clear boundaries and dependency direction
package ports
