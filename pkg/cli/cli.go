// This package implements the "propmangle" command. It reads JavaScript from
// files or stdin, renames properties as directed by "@mangle" comments and
// "--rename" flags, and writes the result to stdout or to output files.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/evanw/propmangle/internal/exitcode"
	"github.com/evanw/propmangle/internal/logger"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

const longHelp = `Renames object properties in JavaScript files. A property is renamed when
its name appears in a "@mangle" comment or in a "--rename" flag:

  /* @mangle ['foo', ['bar', 'b']] */
  x = { foo: 1, bar: 2 }.foo    // becomes x = { a: 1, b: 2 }.a

Each input file is renamed independently. Names from "--rename" and
"--rename-file" are used for every file.`

const examples = `  # Provide input via stdin, get output via stdout
  propmangle < input.js > output.js

  # Rename "foo" to "f" everywhere and remember the names that were used
  propmangle input.js --rename=foo:f --outfile=out.js --name-map=names.json

  # Reuse the names from a previous run for several files at once
  propmangle a.js b.js --rename-file=names.json --outdir=dist`

// Run returns the process exit code. Problems with the command line exit
// with code 2 and all other failures exit with code 1.
func Run(osArgs []string) int {
	err := runImpl(osArgs, os.Stdin, os.Stdout)
	if err != nil && !exitcode.IsReported(err) {
		logger.PrintErrorToStderr(osArgs, err.Error())
	}
	return exitcode.Get(err)
}

func runImpl(osArgs []string, stdin io.Reader, stdout io.Writer) error {
	cmd := newCommand(stdin)
	cmd.SetArgs(osArgs)
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(context.Background())
}

func newCommand(stdin io.Reader) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "propmangle [flags] [files...]",
		Short:   "Rename object properties in JavaScript files",
		Long:    longHelp,
		Example: examples,
		Version: Version,

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help text instead of waiting on a terminal for input
			if file, ok := stdin.(*os.File); ok && len(args) == 0 && logger.GetTerminalInfo(file).IsTTY {
				return cmd.Help()
			}
			return run(cmd.Context(), opts, args, stdin, cmd.OutOrStdout())
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	opts.addFlags(cmd.Flags())

	detector := flagTypoDetector(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exitcode.Usage(suggestFlag(detector, err))
	})

	return cmd
}
