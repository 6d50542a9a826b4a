package main

// Exit codes used across all commands
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing repository, invalid config)
	ExitDataError   = 3 // Data error (validation failure, malformed input)
	ExitNotFound    = 4 // Record not found
)
