// Package vmctl applies lifecycle operations to the virtual machines behind
// containers.
//
// A container's definition path is a libvirt domain XML file. The Controller
// reads the domain name from it and drives the domain through the local
// libvirt daemon:
//
//   - start: define (with a hardware profile when given) and create
//   - stop: graceful shutdown
//   - pause: suspend
//   - reset: hard reset
//
// Each call opens its own connection and closes it before returning.
// Failures are returned as errors naming the domain and operation.
package vmctl
