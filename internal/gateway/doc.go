// Package gateway provides the disk-backed persistence host for the hangar
// entity store.
//
// Three logical tables are kept as YAML documents in a data directory:
//
//	<data-dir>/hardware.yaml    list of HardwareProfile
//	<data-dir>/containers.yaml  ordered list of Container
//	<data-dir>/settings.yaml    Settings singleton
//
// FileGateway implements the request/response contract the store consumes
// (store.Gateway). Loads of a missing or blank file return an empty table.
// Saves write a temporary file next to the target and rename it into place,
// so a reader never observes a partially written table.
//
// Every failure is returned as *Error, which carries the operation, the table
// and a plain string message alongside the wrapped cause.
package gateway
