package cli

import (
	"flag"
	"fmt"

	"github.com/platinummonkey/pslint/pkg/linter/rules"
)

// newRulesCommand creates a command that lists the built-in rules
func newRulesCommand() *Command {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)

	return &Command{
		Name:        "rules",
		Description: "List available lint rules",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}
			return listRules()
		},
	}
}

func listRules() error {
	all := rules.DefaultRules()

	fmt.Printf("Available lint rules (%d):\n\n", len(all))
	for _, rule := range all {
		kinds := ""
		for i, k := range rule.Kinds() {
			if i > 0 {
				kinds += ", "
			}
			kinds += k.String()
		}
		fmt.Printf("  - %-30s [%s]\n    %s\n    applies to: %s\n",
			rule.Name(),
			rule.Severity(),
			rule.Description(),
			kinds,
		)
	}

	return nil
}
