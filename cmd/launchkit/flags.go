package main

// Flag structs to decouple cobra from logic for testing.

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigPath string
}

// ServerFlags drives the server start/restart commands.
type ServerFlags struct {
	Folder     string
	Stack      string
	Command    string // manual command override, whitespace-split
	Foreground bool
	NoBrowser  bool
}

// InitFlags drives the init command. Empty fields fall back to
// interactive prompts.
type InitFlags struct {
	Name   string
	Type   string
	Stack  string
	Folder string
	Addons []string
	NoGit  bool
}

// ServeFlags drives the serve command.
type ServeFlags struct {
	Listen        string
	BasePath      string
	MetricsListen string
	Folder        string
	Stack         string
}

// StacksFlags drives the stacks listing.
type StacksFlags struct {
	Type string
}
