// Package command implements a hierarchical command dispatcher. A command
// either delegates to one of its sub-commands or, as a leaf, binds its
// options and runs its action.
package command

import (
	"fmt"
	"io"
	"strings"
)

const (
	// UsageExitCode is returned when usage was printed instead of running an action
	UsageExitCode = 1
	// NoActionExitCode is returned by a leaf that never had an action bound
	NoActionExitCode = -1
)

// Action runs a leaf command with its bound option values and returns an exit code
type Action func(args map[string]string) int

// Option describes one option of a leaf command
type Option struct {
	ValueKey    string // key the value is stored under in the action's map
	LongName    string // matched by --LongName
	ShortName   string // matched by -ShortName
	Description string
}

// Command is a node of the command tree
type Command struct {
	name        string
	description string
	options     []Option
	action      Action
	children    []*Command
	output      io.Writer
}

// New creates a root command that prints usage to output
func New(name, description string, output io.Writer) *Command {
	return &Command{
		name:        name,
		description: description,
		action:      func(map[string]string) int { return NoActionExitCode },
		output:      output,
	}
}

// Name returns the full command name, including the names of its parents
func (c *Command) Name() string {
	return c.name
}

// ShortName returns the last segment of the full name
func (c *Command) ShortName() string {
	if i := strings.LastIndexByte(c.name, ' '); i >= 0 {
		return c.name[i+1:]
	}
	return c.name
}

// Description returns the command description
func (c *Command) Description() string {
	return c.description
}

// Options returns the declared options in order
func (c *Command) Options() []Option {
	return c.options
}

// Children returns the sub-commands in registration order
func (c *Command) Children() []*Command {
	return c.children
}

// Hidden reports whether the command is left out of its parent's usage
func (c *Command) Hidden() bool {
	return strings.HasPrefix(c.ShortName(), "_")
}

// Option declares an option
func (c *Command) Option(valueKey, longName, shortName, description string) {
	c.options = append(c.options, Option{
		ValueKey:    valueKey,
		LongName:    longName,
		ShortName:   shortName,
		Description: description,
	})
}

// OnRun binds the action run by this command when it is a leaf
func (c *Command) OnRun(action Action) {
	c.action = action
}

// SubCommand adds a child command and hands it to configure before returning it
func (c *Command) SubCommand(name, description string, configure func(cmd *Command)) *Command {
	child := New(c.name+" "+name, description, c.output)
	if configure != nil {
		configure(child)
	}
	c.children = append(c.children, child)
	return child
}

// Run dispatches args. The first token selects a sub-command when it matches
// one; otherwise an interior command prints usage and returns UsageExitCode,
// and a leaf runs its action with the bound options.
func (c *Command) Run(args []string) int {
	if len(args) > 0 {
		for _, child := range c.children {
			if child.ShortName() == args[0] {
				return child.Run(args[1:])
			}
		}
	}

	if len(c.children) > 0 {
		c.PrintUsage()
		return UsageExitCode
	}

	values, ok := c.tryParseArgs(args)
	if !ok {
		c.PrintUsage()
		return UsageExitCode
	}

	return c.action(values)
}

// tryParseArgs binds option values. Tokens that are not flags are skipped.
// An unknown or repeated flag, or a flag without a non-blank value, fails
// the whole parse.
func (c *Command) tryParseArgs(args []string) (map[string]string, bool) {
	values := make(map[string]string)
	queue := args

	for len(queue) > 0 {
		token := queue[0]
		queue = queue[1:]

		var option *Option
		switch {
		case strings.HasPrefix(token, "--"):
			option = c.findOption(token[2:], true)
		case strings.HasPrefix(token, "-"):
			option = c.findOption(token[1:], false)
		default:
			continue
		}

		if option == nil || len(queue) == 0 || strings.TrimSpace(queue[0]) == "" {
			return nil, false
		}
		if _, exists := values[option.ValueKey]; exists {
			return nil, false
		}

		values[option.ValueKey] = queue[0]
		queue = queue[1:]
	}

	return values, len(queue) == 0
}

func (c *Command) findOption(name string, long bool) *Option {
	if name == "" {
		return nil
	}
	for i := range c.options {
		opt := &c.options[i]
		if long && opt.LongName == name || !long && opt.ShortName == name {
			return opt
		}
	}
	return nil
}

// PrintUsage writes the command list of an interior command, or the option
// list of a leaf
func (c *Command) PrintUsage() {
	w := c.output
	if len(c.children) > 0 {
		fmt.Fprintln(w, c.description)
		fmt.Fprintln(w, "Commands:")
		for _, child := range c.children {
			if child.Hidden() {
				continue
			}
			fmt.Fprintf(w, "  %s:  %s\n", child.ShortName(), child.description)
		}
		fmt.Fprintln(w)
		return
	}

	optionsPart := ""
	if len(c.options) > 0 {
		optionsPart = "[options] "
	}
	fmt.Fprintf(w, "Usage: %s %s\n", c.name, optionsPart)
	fmt.Fprintln(w)

	if len(c.options) > 0 {
		fmt.Fprintln(w, "options:")
		for _, opt := range c.options {
			if opt.ShortName == "" {
				fmt.Fprintf(w, " --%s:  %s\n", opt.LongName, opt.Description)
				continue
			}
			fmt.Fprintf(w, " --%s | -%s:  %s\n", opt.LongName, opt.ShortName, opt.Description)
		}
		fmt.Fprintln(w)
	}
}
