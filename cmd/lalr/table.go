package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/lalr/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	html *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "table <grammar file path>",
		Short:   "Print the ACTION and GOTO tables of a grammar",
		Example: `  lalr table arith.lalr --html arith.html`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTable,
	}
	tableFlags.html = cmd.Flags().String("html", "", "write the table in HTML format to a file")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	_, result, err := analyze(args[0])
	if err != nil {
		return err
	}
	T := result.ParseTable()
	if *tableFlags.html != "" {
		f, err := os.Create(*tableFlags.html)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer f.Close()
		n, err := dump(f, T.WriteHTML)
		if err != nil {
			return err
		}
		pterm.Info.Printf("Table written to %s (%s)\n", *tableFlags.html, humanize.Bytes(uint64(n)))
		return nil
	}
	pterm.DefaultTable.WithHasHeader().WithData(tableData(T)).Render()
	actions, gotos := T.Size()
	pterm.Info.Printf("%s states, %s actions, %s gotos, %s conflicts resolved\n",
		humanize.Comma(int64(T.States())), humanize.Comma(int64(actions)),
		humanize.Comma(int64(gotos)), humanize.Comma(int64(len(result.Conflicts()))))
	return nil
}

func tableData(T *lr.ParseTable) pterm.TableData {
	header := []string{"state"}
	header = append(header, T.Terminals()...)
	header = append(header, T.Nonterminals()...)
	data := pterm.TableData{header}
	for state := 0; state < T.States(); state++ {
		row := []string{strconv.Itoa(state)}
		for _, t := range T.Terminals() {
			if v, ok := T.Action(state, t); ok {
				row = append(row, lr.ActionString(v))
			} else {
				row = append(row, "")
			}
		}
		for _, nt := range T.Nonterminals() {
			if v, ok := T.Goto(state, nt); ok {
				row = append(row, strconv.Itoa(v))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}
	return data
}
