package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lalr/lr/lalr1"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file path>",
		Short: "Parse input lines interactively",
		Long: `Parse input lines interactively and print the parse tree for each line.
Commands are:
  :reload   reload the grammar file
  :quit     leave the REPL (or <ctrl>D)`,
		Args: cobra.ExactArgs(1),
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

// Intp is an interactive parsing session for a grammar file.
type Intp struct {
	path string
	lang *lalr1.Language
	repl *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	lang, err := newLanguage(args[0])
	if err != nil {
		return err
	}
	repl, err := readline.New("lalr> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{path: args[0], lang: lang, repl: repl}
	pterm.Info.Println("Welcome to the LALR(1) REPL")
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
	return nil
}

// REPL reads lines until EOF or ':quit'.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if intp.Eval(line) {
			break
		}
	}
	println("Good bye!")
}

// Eval parses a line of input or executes a REPL command. It returns true
// if the session should end.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":reload":
		lang, err := newLanguage(intp.path)
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		intp.lang = lang
		pterm.Info.Printf("Reloaded %s\n", intp.path)
		return false
	}
	v, err := intp.lang.Compile(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	printResult(v)
	return false
}
