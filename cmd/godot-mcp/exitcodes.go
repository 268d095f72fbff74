package main

// Exit codes for the godot-mcp CLI.
const (
	ExitOK          = 0 // Success.
	ExitInvalidArgs = 1 // Invalid arguments or bad path.
	ExitNoGodot     = 2 // No Godot executable could be located.
)
