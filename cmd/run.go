package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/parser"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run awl code",
	Long:  `Run awl code provided supplied via the command line or a file.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runFileCommand(mustLoadConfig(), args, runExpression, runPrint)
	},
}

func runFileCommand(cfg *Config, args []string, expression bool, print bool) {
	srcs, err := runReadSources(args, expression)
	if err != nil {
		logger.Fatal(err)
	}
	env, err := cfg.NewEnv()
	if err != nil {
		logger.Fatal(err)
	}
	err = runSources(env, srcs, os.Stdout, print)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type source struct {
	name string
	text []byte
}

func runReadSources(args []string, expression bool) ([]source, error) {
	srcs := make([]source, len(args))
	if expression {
		for i := range args {
			srcs[i] = source{fmt.Sprintf("expression %d", i+1), []byte(args[i])}
		}
		return srcs, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		srcs[i] = source{path, b}
	}
	return srcs, nil
}

// runSources evaluates each expression in srcs in env, stopping at the first
// error.  When print is true the value of every expression is written to w.
func runSources(env *lisp.LEnv, srcs []source, w io.Writer, print bool) error {
	for _, src := range srcs {
		exprs, n, err := parser.ParseLVal(src.text)
		if err != nil {
			return &parser.SyntaxError{Name: src.name, Offset: n}
		}
		for _, expr := range exprs {
			v := env.Eval(expr)
			if err := lisp.GoError(v); err != nil {
				return err
			}
			if print {
				fmt.Fprintln(w, v)
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
