// Package command builds the Ex command text sent to the editor.
//
// Arguments are passed through verbatim: no quoting or escaping is applied,
// so spaces and special characters reach the editor's command parser as typed.
// Every command string the CLI sends is built here.
package command

// Command is an editor command verb with a single argument.
type Command struct {
	Verb     string
	Argument string
	// Prefix is prepended to Argument, e.g. "term://" for terminal renames.
	Prefix string
}

// Edit opens file in the current window.
func Edit(file string) Command {
	return Command{Verb: "edit", Argument: file}
}

// Tchdir changes the tab-local working directory. An empty directory is sent
// as-is.
func Tchdir(directory string) Command {
	return Command{Verb: "tchdir", Argument: directory}
}

// RenameTerminal renames the current terminal buffer to term://name.
func RenameTerminal(name string) Command {
	return Command{Verb: "file", Argument: name, Prefix: "term://"}
}

// String returns the command text exactly as sent over RPC.
func (c Command) String() string {
	return c.Verb + " " + c.Prefix + c.Argument
}
