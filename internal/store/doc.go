// Package store defines the persistence interfaces consumed by the rest of
// the application: task and list storage, and the reminder delivery ledger.
// Concrete implementations live under internal/platform. Interfaces are
// accepted, structs are returned.
package store
