package cli

import "fmt"

// Command is one decoded invocation. The set is closed: only the types below
// implement it, and dispatch has a case for each.
type Command interface {
	command()
}

type AddCmd struct {
	Title string
}

type ListCmd struct {
	All         bool
	Group       bool
	Interactive bool
	Format      string
}

type DoneCmd struct {
	ID int
}

type DeleteCmd struct {
	ID int
}

// UsageError is a command line that couldn't be decoded.
type UsageError struct {
	Err error
}

func (AddCmd) command()     {}
func (ListCmd) command()    {}
func (DoneCmd) command()    {}
func (DeleteCmd) command()  {}
func (UsageError) command() {}

func (e UsageError) Error() string { return e.Err.Error() }

func (e UsageError) Unwrap() error { return e.Err }

func usagef(format string, args ...any) UsageError {
	return UsageError{Err: fmt.Errorf(format, args...)}
}

// Output formats for list.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)
