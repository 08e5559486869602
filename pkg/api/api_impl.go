package api

import (
	"errors"
	"fmt"

	"github.com/evanw/propmangle/internal/config"
	"github.com/evanw/propmangle/internal/helpers"
	"github.com/evanw/propmangle/internal/js_parser"
	"github.com/evanw/propmangle/internal/js_printer"
	"github.com/evanw/propmangle/internal/logger"
	"github.com/evanw/propmangle/internal/mangler"
)

func validateColor(value StderrColor) logger.StderrColor {
	switch value {
	case ColorIfTerminal:
		return logger.ColorIfTerminal
	case ColorNever:
		return logger.ColorNever
	case ColorAlways:
		return logger.ColorAlways
	default:
		panic("Invalid color")
	}
}

func validateLogLevel(value LogLevel) logger.LogLevel {
	switch value {
	case LogLevelVerbose:
		return logger.LevelVerbose
	case LogLevelInfo:
		return logger.LevelInfo
	case LogLevelWarning:
		return logger.LevelWarning
	case LogLevelError:
		return logger.LevelError
	case LogLevelSilent:
		return logger.LevelSilent
	default:
		panic("Invalid log level")
	}
}

func messagesOfKind(kind logger.MsgKind, msgs []logger.Msg) []Message {
	var filtered []Message
	for _, msg := range msgs {
		if msg.Kind == kind {
			var location *Location

			if loc := msg.Location; loc != nil {
				location = &Location{
					File:     loc.File,
					Line:     loc.Line,
					Column:   loc.Column,
					Length:   loc.Length,
					LineText: loc.LineText,
				}
			}

			filtered = append(filtered, Message{
				Text:     msg.Text,
				Location: location,
			})
		}
	}
	return filtered
}

// Errors from the renamer carry the range of the directive that caused them
func addMangleError(log logger.Log, source *logger.Source, err error) {
	var malformed *mangler.MalformedDirectiveError
	var unsupported *mangler.UnsupportedDirectiveItemError

	switch {
	case errors.As(err, &malformed):
		log.AddRangeError(source, malformed.Range, err.Error())
	case errors.As(err, &unsupported):
		log.AddRangeError(source, unsupported.Range, err.Error())
	default:
		log.AddError(nil, logger.Loc{}, err.Error())
	}
}

////////////////////////////////////////////////////////////////////////////////
// Transform API

func transformImpl(input string, options TransformOptions) (result TransformResult) {
	var log logger.Log
	if options.LogLevel == LogLevelSilent {
		log = logger.NewDeferLog()
	} else {
		log = logger.NewStderrLog(logger.StderrOptions{
			IncludeSource: true,
			ErrorLimit:    options.ErrorLimit,
			Color:         validateColor(options.Color),
			LogLevel:      validateLogLevel(options.LogLevel),
		})
	}

	// Turn internal crashes into error messages instead of taking down the caller
	defer func() {
		if r := recover(); r != nil {
			log.AddError(nil, logger.Loc{}, fmt.Sprintf("panic: %v\n%s", r, helpers.PrettyPrintedStack()))
			msgs := log.Done()
			result = TransformResult{
				Errors:   messagesOfKind(logger.Error, msgs),
				Warnings: messagesOfKind(logger.Warning, msgs),
			}
		}
	}()

	code, nameMap := transformWithLog(log, input, options)
	msgs := log.Done()

	return TransformResult{
		Errors:   messagesOfKind(logger.Error, msgs),
		Warnings: messagesOfKind(logger.Warning, msgs),
		Code:     code,
		NameMap:  nameMap,
	}
}

func transformWithLog(log logger.Log, input string, options TransformOptions) ([]byte, map[string]string) {
	// Convert and validate the options
	rename, err := config.NewRenameConfig(options.Rename)
	if err != nil {
		log.AddError(nil, logger.Loc{}, err.Error())
		return nil, nil
	}

	source := logger.Source{
		PrettyPath: "<stdin>",
		Contents:   input,
	}
	if options.Sourcefile != "" {
		source.PrettyPath = options.Sourcefile
	}

	tree, ok := js_parser.Parse(log, source)
	if !ok {
		return nil, nil
	}

	// Nothing is printed if renaming fails since the tree may be half-renamed
	table, err := mangler.Mangle(log, &source, &tree, rename)
	if err != nil {
		addMangleError(log, &source, err)
		return nil, nil
	}

	result := js_printer.Print(tree, js_printer.Options{
		MinifyWhitespace: options.MinifyWhitespace,
	})
	return result.JS, table.NameMap()
}
