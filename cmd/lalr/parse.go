package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/lalr/lr/cache"
	"github.com/npillmayer/lalr/lr/dsl"
	"github.com/npillmayer/lalr/lr/lalr1"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path> [input...]",
		Short: "Parse input with a grammar and print the parse tree",
		Long: `Parse input with a grammar and print the parse tree.
Input is given as arguments, joined by blanks, or read from stdin if no
arguments are given.`,
		Example: `  lalr parse arith.lalr '1 + 2 * 3'
  echo '(1+2)' | lalr parse arith.lalr`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	lang, err := newLanguage(args[0])
	if err != nil {
		return err
	}
	var input string
	if len(args) > 1 {
		input = strings.Join(args[1:], " ")
	} else {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("cannot read input: %w", err)
		}
		input = string(b)
	}
	tracer().Infof("input is %q", input)
	v, err := lang.Compile(input)
	if err != nil {
		return err
	}
	printResult(v)
	return nil
}

// newLanguage loads a grammar file and creates a language building parse
// trees, with analysis results and expressions cached.
func newLanguage(path string) (*lalr1.Language, error) {
	def, err := loadGrammar(path, dsl.WithTreeActions())
	if err != nil {
		return nil, err
	}
	analyzer, err := newAnalyzer(path)
	if err != nil {
		return nil, err
	}
	parser, err := def.Parser(lalr1.WithAnalyzer(analyzer))
	if err != nil {
		return nil, err
	}
	exprs, err := cache.NewExpressions(*rootFlags.cacheSize)
	if err != nil {
		return nil, err
	}
	return lalr1.NewLanguage(def.Lexer, parser, lalr1.WithExpressionCache(exprs)), nil
}

func printResult(v interface{}) {
	node, ok := v.(*lalr.Node)
	if !ok || node == nil {
		pterm.Info.Println(fmt.Sprintf("%v", v))
		return
	}
	pterm.Info.Println(node.String())
	root := pterm.NewTreeFromLeveledList(leveledList(node))
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledList(node *lalr.Node) pterm.LeveledList {
	var ll pterm.LeveledList
	node.Walk(func(n *lalr.Node, depth int) {
		text := n.Name
		if n.IsLeaf() && n.Token.Value() != n.Name {
			text = fmt.Sprintf("%s %q", n.Name, n.Token.Value())
		}
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: text})
	})
	return ll
}
