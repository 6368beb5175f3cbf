package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dumpFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "dump <grammar file path>",
		Short:   "Dump the LALR(1) automaton of a grammar in GraphViz format",
		Example: `  lalr dump arith.lalr -o arith.dot && dot -Tpng -O arith.dot`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDump,
	}
	dumpFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	_, result, err := analyze(args[0])
	if err != nil {
		return err
	}
	if *dumpFlags.output == "" {
		return result.Automaton().ToGraphViz(os.Stdout)
	}
	f, err := os.Create(*dumpFlags.output)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	n, err := dump(f, func(w io.Writer) error {
		return result.Automaton().ToGraphViz(w)
	})
	if err != nil {
		return err
	}
	pterm.Info.Printf("Automaton with %s states written to %s (%s)\n",
		humanize.Comma(int64(result.Automaton().Len())), *dumpFlags.output, humanize.Bytes(uint64(n)))
	return nil
}

// dump writes to w through a buffer and reports the number of bytes written.
func dump(w io.Writer, write func(io.Writer) error) (int, error) {
	buf := bufio.NewWriter(w)
	cw := &countingWriter{w: buf}
	if err := write(cw); err != nil {
		return cw.n, err
	}
	return cw.n, buf.Flush()
}

type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}
