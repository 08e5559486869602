// This API exposes the property renamer as a library. The "Transform" call
// takes the contents of one JavaScript file and returns the rewritten code
// along with the name map that was used for it.
//
// Every call is independent. A name generated for one input is never reused
// for another, so callers that need names to agree across files should pass
// the same "Rename" map to every call.
package api

type Location struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

type Message struct {
	Text     string
	Location *Location
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type LogLevel uint8

const (
	LogLevelSilent LogLevel = iota
	LogLevelVerbose
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

////////////////////////////////////////////////////////////////////////////////
// Transform API

type TransformOptions struct {
	Color      StderrColor
	ErrorLimit int
	LogLevel   LogLevel

	MinifyWhitespace bool

	// Each value must be a string. Anything else is reported as an error
	// without touching the input.
	Rename map[string]interface{}

	Sourcefile string
}

type TransformResult struct {
	Errors   []Message
	Warnings []Message

	Code []byte

	// Every property name that was renamed mapped to its new name. This
	// includes names from "Rename" and from "@mangle" directives even if the
	// input never used them.
	NameMap map[string]string
}

func Transform(input string, options TransformOptions) TransformResult {
	return transformImpl(input, options)
}
