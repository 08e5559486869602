package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evanw/propmangle/internal/config"
	"github.com/evanw/propmangle/internal/helpers"
	"github.com/evanw/propmangle/pkg/api"
	"github.com/spf13/pflag"
)

type options struct {
	renames          []string
	renameFile       string
	outfile          string
	outdir           string
	nameMap          string
	sourcefile       string
	minifyWhitespace bool
	logLevel         string
	color            string
	errorLimit       int
}

func (o *options) addFlags(flags *pflag.FlagSet) {
	flags.StringArrayVar(&o.renames, "rename", nil, "Always rename property A to B, written as A:B (may be repeated)")
	flags.StringVar(&o.renameFile, "rename-file", "", "Read renames from a JSON or YAML object (e.g. a previous name map)")
	flags.StringVar(&o.outfile, "outfile", "", "The output file (for one input file)")
	flags.StringVar(&o.outdir, "outdir", "", "The output directory (for multiple input files)")
	flags.StringVar(&o.nameMap, "name-map", "", "Write the renames that were used to this file (.json, .yml, or .yaml)")
	flags.StringVar(&o.sourcefile, "sourcefile", "", "The file name to use in messages when reading from stdin")
	flags.BoolVar(&o.minifyWhitespace, "minify-whitespace", false, "Remove whitespace from the output")
	flags.StringVar(&o.logLevel, "log-level", "info", "Disable logging (verbose, info, warning, error, silent)")
	flags.StringVar(&o.color, "color", "", "Force use of color terminal escapes (true or false)")
	flags.IntVar(&o.errorLimit, "error-limit", 10, "Maximum error count or 0 to disable")

	// "--color" on its own means "--color=true"
	flags.Lookup("color").NoOptDefVal = "true"
}

func parseRenameFlag(value string) (from string, to string, err error) {
	from, to, ok := strings.Cut(value, ":")
	if !ok || from == "" {
		return "", "", fmt.Errorf("Invalid rename %q (expected the form \"from:to\")", value)
	}
	return from, to, nil
}

func parseLogLevel(value string) (api.LogLevel, error) {
	switch value {
	case "verbose":
		return api.LogLevelVerbose, nil
	case "info":
		return api.LogLevelInfo, nil
	case "warning":
		return api.LogLevelWarning, nil
	case "error":
		return api.LogLevelError, nil
	case "silent":
		return api.LogLevelSilent, nil
	default:
		return 0, fmt.Errorf("Invalid log level %q (valid: verbose, info, warning, error, silent)", value)
	}
}

func parseColor(value string) (api.StderrColor, error) {
	switch value {
	case "":
		return api.ColorIfTerminal, nil
	case "true":
		return api.ColorAlways, nil
	case "false":
		return api.ColorNever, nil
	default:
		return 0, fmt.Errorf("Invalid color %q (valid: true, false)", value)
	}
}

// Renames from flags take precedence over renames from the file
func (o *options) renameConfig() (config.RenameConfig, error) {
	var fromFile config.RenameConfig
	if o.renameFile != "" {
		var err error
		if fromFile, err = config.LoadRenameConfig(o.renameFile); err != nil {
			return config.RenameConfig{}, err
		}
	}

	fromFlags := make(map[string]string, len(o.renames))
	for _, value := range o.renames {
		from, to, err := parseRenameFlag(value)
		if err != nil {
			return config.RenameConfig{}, err
		}
		fromFlags[from] = to
	}

	return fromFile.Merge(config.RenameConfigFromStrings(fromFlags)), nil
}

func (o *options) transformOptions() (api.TransformOptions, error) {
	logLevel, err := parseLogLevel(o.logLevel)
	if err != nil {
		return api.TransformOptions{}, err
	}
	color, err := parseColor(o.color)
	if err != nil {
		return api.TransformOptions{}, err
	}
	if o.errorLimit < 0 {
		return api.TransformOptions{}, fmt.Errorf("Invalid error limit %d", o.errorLimit)
	}
	renames, err := o.renameConfig()
	if err != nil {
		return api.TransformOptions{}, err
	}

	rename := make(map[string]interface{}, renames.Len())
	for _, key := range renames.SortedKeys() {
		rename[key], _ = renames.Get(key)
	}

	return api.TransformOptions{
		Color:            color,
		ErrorLimit:       o.errorLimit,
		LogLevel:         logLevel,
		MinifyWhitespace: o.minifyWhitespace,
		Rename:           rename,
		Sourcefile:       o.sourcefile,
	}, nil
}

// Returns the output path for each input, or nil when writing to stdout
func (o *options) outputPaths(inputPaths []string) ([]string, error) {
	switch {
	case o.outfile != "" && o.outdir != "":
		return nil, fmt.Errorf("Cannot use both \"outfile\" and \"outdir\"")

	case o.nameMap != "" && len(inputPaths) > 1:
		return nil, fmt.Errorf("Cannot use \"name-map\" with multiple input files")

	case o.outfile != "":
		if len(inputPaths) > 1 {
			return nil, fmt.Errorf("Must use \"outdir\" when there are multiple input files")
		}
		return []string{o.outfile}, nil

	case o.outdir != "":
		if len(inputPaths) == 0 {
			return nil, fmt.Errorf("Cannot use \"outdir\" when reading from stdin")
		}
		paths := make([]string, len(inputPaths))
		seen := make(map[string]string, len(inputPaths))
		for i, inputPath := range inputPaths {
			outputPath := joinOutdir(o.outdir, inputPath)
			if other, ok := seen[outputPath]; ok {
				return nil, fmt.Errorf("Both %q and %q would be written to %q", other, inputPath, outputPath)
			}
			seen[outputPath] = inputPath
			paths[i] = outputPath
		}
		return paths, nil
	}

	return nil, nil
}

func flagTypoDetector(flags *pflag.FlagSet) helpers.TypoDetector {
	var names []string
	flags.VisitAll(func(flag *pflag.Flag) {
		names = append(names, "--"+flag.Name)
	})
	sort.Strings(names)
	return helpers.MakeTypoDetector(names)
}

func suggestFlag(detector helpers.TypoDetector, err error) error {
	const prefix = "unknown flag: "
	if text := err.Error(); strings.HasPrefix(text, prefix) {
		flag := text[len(prefix):]
		if corrected, ok := detector.MaybeCorrectTypo(flag); ok {
			return fmt.Errorf("Invalid flag %q (did you mean %q?)", flag, corrected)
		}
	}
	return err
}
