// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	logutil.Debug("launched child", "pid", pid)
//	logutil.Warn("stream close failed", "error", err)
//
// Packages that manage a long-lived resource create a component logger and
// attach identifying fields once:
//
//	log := logutil.NewLogger("process").WithFields("id", id)
//	log.Debug("closed")
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger
//   - Set PROCMANAGE_DEBUG=true
//
// # Structured Logging
//
// When structured=true is passed to SetupLogger, logs are output as JSON:
//
//	{"time":"2026-01-15T10:30:00Z","level":"DEBUG","msg":"launched","pid":4242}
//
// Otherwise, logs use a human-readable text format:
//
//	time=2026-01-15T10:30:00Z level=DEBUG msg=launched pid=4242
package logutil
