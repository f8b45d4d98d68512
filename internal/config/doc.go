// Package config loads hangar's runtime configuration.
//
// Values are resolved in three layers, each overriding the previous one:
//
//  1. Built-in defaults.
//  2. A TOML file, by default ~/.config/hangar/config.toml. A missing file is
//     not an error.
//  3. Environment variables prefixed with HANGAR_ (for example
//     HANGAR_DATA_DIR or HANGAR_POLL_INTERVAL=5s).
//
// Command-line flags are applied by the caller on top of the result.
//
// Example config.toml:
//
//	data_dir = "~/vms/hangar"
//	log_level = "debug"
//	libvirt_socket = "/run/libvirt/libvirt-sock"
//	poll_interval = "2s"
//	shutdown_timeout = "10s"
//	metrics_addr = "127.0.0.1:9464"
//
// Paths beginning with ~ are expanded against the user's home directory.
package config
