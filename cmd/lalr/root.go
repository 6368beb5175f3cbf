package main

import (
	"fmt"
	"sync"

	"github.com/npillmayer/lalr/lr"
	"github.com/npillmayer/lalr/lr/cache"
	"github.com/npillmayer/lalr/lr/dsl"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'lalr.cli'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.cli")
}

var rootFlags = struct {
	trace     *string
	dev       *bool
	cacheSize *int
	mode      *string
}{}

var rootCmd = &cobra.Command{
	Use:   "lalr",
	Short: "Analyze LALR(1) grammars and parse input with them",
	Long: `lalr reads grammar files and
- dumps the LALR(1) automaton in GraphViz format,
- prints the parse table and the conflicts resolved,
- parses input, given as arguments or interactively.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	rootFlags.trace = flags.String("trace", "Error", "trace level [Debug|Info|Error]")
	rootFlags.dev = flags.Bool("dev", false, "development mode: cache keys include the modification time of grammar files")
	rootFlags.cacheSize = flags.Int("cache-size", 16, "number of analysis results and expressions to cache")
	rootFlags.mode = flags.String("mode", "", "conflict resolution mode, overriding %resolve (e.g. 'shift|operators')")
}

// Execute runs the root command.
func Execute() error {
	initDisplay()
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setup(cmd *cobra.Command, args []string) error {
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	gtrace.SyntaxTracer.SetTraceLevel(level)
	for _, key := range []string{"lalr.lr", "lalr.scanner", "lalr.cache", "lalr.dsl", "lalr.cli"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	if *rootFlags.cacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, is %d", *rootFlags.cacheSize)
	}
	return nil
}

// loadGrammar loads a grammar file, applying the --mode flag.
func loadGrammar(path string, opts ...dsl.Option) (*dsl.Definition, error) {
	if *rootFlags.mode != "" {
		mode, err := lr.ParseConflictMode(*rootFlags.mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dsl.WithMode(mode))
	}
	def, err := dsl.LoadFile(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot load grammar %s: %w", path, err)
	}
	def.Grammar.Dump() // only visible in debug mode
	return def, nil
}

// analyzers holds one analyzer per grammar file, all of them sharing an
// LRU-backed cache for the lifetime of the process.
var analyzers = struct {
	mx     sync.Mutex
	store  *cache.Store
	byPath map[string]*lr.Analyzer
}{
	byPath: make(map[string]*lr.Analyzer),
}

// newAnalyzer returns the analyzer for a grammar file. In development mode,
// cache keys reflect the modification time of the grammar file.
func newAnalyzer(path string) (*lr.Analyzer, error) {
	analyzers.mx.Lock()
	defer analyzers.mx.Unlock()
	if a, ok := analyzers.byPath[path]; ok {
		return a, nil
	}
	if analyzers.store == nil {
		lru, err := cache.NewLRUStore(*rootFlags.cacheSize)
		if err != nil {
			return nil, err
		}
		analyzers.store = cache.NewStore(lru, "lalr_")
	}
	opts := []lr.AnalyzerOption{lr.WithCache(analyzers.store)}
	if *rootFlags.dev {
		opts = append(opts, lr.WithKeyFunc(cache.SourceKey(path)))
	}
	a := lr.NewAnalyzer(opts...)
	analyzers.byPath[path] = a
	return a, nil
}

// analyze loads and analyzes a grammar file.
func analyze(path string) (*dsl.Definition, *lr.AnalysisResult, error) {
	def, err := loadGrammar(path)
	if err != nil {
		return nil, nil, err
	}
	analyzer, err := newAnalyzer(path)
	if err != nil {
		return nil, nil, err
	}
	result, err := analyzer.Analyze(def.Grammar)
	if err != nil {
		return nil, nil, err
	}
	return def, result, nil
}
