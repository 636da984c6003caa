package bot

import "errors"

// Error taxonomy for command handling and setup.
var (
	// ErrNotAuthenticated means the base URL or access token is missing.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSetupInProgress means a setup run was rejected because one is active.
	ErrSetupInProgress = errors.New("setup already in progress")
	// ErrProjectNotFound means a project name lookup missed during creation.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput means a command argument was rejected before any
	// remote call.
	ErrInvalidInput = errors.New("invalid input")
)
