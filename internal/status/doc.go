// Package status reports whether each container's VM is running.
//
// Compute joins the container list with the names of active domains and
// yields one ContainerStatus per container, in container order. The Poller
// repeats that join on a fixed interval, but only while its view is visible:
// Show starts the loop (with an immediate refresh) and Hide stops it at once.
// A parent context ending also stops it. Failed polls keep the previous
// statuses and record the error, so a view always has the last good data.
package status
