// Package store implements the client-side entity store for hangar: the
// in-memory hardware profile, container and settings collections, kept
// consistent with a persistence gateway that is only reachable through
// request/response calls.
//
// # Lifecycle
//
// A Store is an explicitly constructed service:
//
//	st := store.New(gw, store.WithLogger(logger))
//	if err := st.Initialize(ctx); err != nil { ... } // one bulk load
//	defer st.Dispose(ctx)                            // drain queued writes
//
// # Mutations
//
// Mutators (AddHardware, RemoveContainer, MergeContainerBatch,
// ReorderContainers, ...) update memory synchronously and return a *Result
// for the asynchronous full-table save they trigger. Callers may wait on the
// Result or drop it. A failed save is logged and reported through the Result;
// the in-memory change is never rolled back.
//
// UpdateContainer is the exception: it patches memory only. Callers that
// need the patch on disk call SaveContainers afterwards.
//
// # Writes
//
// Each table has a single writer. At most one save+verify round trip is in
// flight per table; saves requested meanwhile coalesce into one pending
// write carrying the latest value. Different tables write in parallel.
//
// # Reconciliation
//
// Every forwarded save is followed by a load of the same table. If the
// persisted value differs from what was written, memory is replaced with the
// persisted value, unless a newer mutation has already been applied, in
// which case the newer write supersedes it.
//
// A save of an empty hardware collection is never forwarded to the gateway.
// The container and settings tables have no such guard.
//
// # Foreign keys
//
// Container.HardwareID is not validated on write. ResolveHardware and
// DanglingContainers resolve references at read time.
package store
