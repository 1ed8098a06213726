// Package cli wires the launcher's command-line entry point. The root
// command owns no flags and performs no parsing of its own: every argument
// is forwarded verbatim to the toolset binary selected for the host
// platform.
package cli
