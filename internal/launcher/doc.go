// Package launcher dispatches an invocation to the precompiled toolset
// binary matching the host platform: it resolves the platform identifier,
// probes the installed and development-tree layouts for the artifact,
// normalizes its permissions, and runs it with the caller's arguments and
// inherited stdio, reporting the child's exit status.
package launcher
