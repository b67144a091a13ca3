// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.
package repository

import "errors"

// ErrProjectNotFound is returned when no seed project has the requested id.
// Handlers should translate this into an HTTP 404 response.
var ErrProjectNotFound = errors.New("project not found")

// ErrNoDatabase is returned by the lead store when the server started
// without a reachable database. Handlers treat it like any other storage
// failure.
var ErrNoDatabase = errors.New("database not configured")
