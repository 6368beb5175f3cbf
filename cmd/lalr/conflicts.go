package main

import (
	"errors"
	"strconv"

	"github.com/npillmayer/lalr/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "conflicts <grammar file path>",
		Short: "List the parse table conflicts of a grammar",
		Long: `List the conflicts resolved by the conflict resolution mode of a grammar.
If a conflict cannot be resolved, it is reported as an error.`,
		Example: `  lalr conflicts arith.lalr --mode all`,
		Args:    cobra.ExactArgs(1),
		RunE:    runConflicts,
	}
	rootCmd.AddCommand(cmd)
}

func runConflicts(cmd *cobra.Command, args []string) error {
	def, result, err := analyze(args[0])
	if err != nil {
		var sr *lr.ShiftReduceConflictError
		var rr *lr.ReduceReduceConflictError
		if errors.As(err, &sr) || errors.As(err, &rr) {
			pterm.Error.Println(err.Error())
			return errors.New("grammar has unresolved conflicts")
		}
		return err
	}
	conflicts := result.Conflicts()
	if len(conflicts) == 0 {
		pterm.Info.Printf("Grammar %s has no conflicts (mode %s)\n", def.Grammar.Name, def.Grammar.Mode())
		return nil
	}
	data := pterm.TableData{{"state", "lookahead", "resolution", "rules"}}
	for _, c := range conflicts {
		rules := ""
		for i, r := range c.Rules {
			if i > 0 {
				rules += " over "
			}
			rules += r.String()
		}
		data = append(data, []string{strconv.Itoa(c.State), c.Lookahead, c.Resolution.String(), rules})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Info.Printf("%d conflicts resolved (mode %s)\n", len(conflicts), def.Grammar.Mode())
	return nil
}
