package cli

import (
	"flag"
	"fmt"
	"os"
)

// Command is one CLI command: either the root dispatcher or a leaf with a
// Run function.
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet
}

// NewRootCommand builds the pslint root command with its subcommands.
func NewRootCommand() *Command {
	return &Command{
		Name:        "pslint",
		Description: "pslint - A script style linter CLI",
		Flags:       flag.NewFlagSet("pslint", flag.ExitOnError),
		Subcommands: map[string]*Command{
			"lint":  newLintCommand(),
			"rules": newRulesCommand(),
		},
	}
}

// Execute dispatches os.Args to the matching subcommand.
func (c *Command) Execute() error {
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		return c.usage()
	}
	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}
	return fmt.Errorf("unknown command: %s", args[0])
}

func (c *Command) usage() error {
	fmt.Printf("Usage: %s <command> [args]\n\n", c.Name)
	fmt.Printf("Commands:\n")
	for name, cmd := range c.Subcommands {
		fmt.Printf("  %-15s %s\n", name, cmd.Description)
	}
	return nil
}
