package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLineAndColumn(t *testing.T) {
	line, column, start, end := computeLineAndColumn("a\nbc\r\nde", 3)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, column)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	line, column, _, _ = computeLineAndColumn("a\r\nb", 3)
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, column)
}

func TestMsgString(t *testing.T) {
	source := Source{PrettyPath: "in.js", Contents: "x = {\n\tfoo: 1 }"}
	msg := Msg{Kind: Error, Text: "Bad thing", Location: LocationOrNil(&source, Range{Loc: Loc{Start: 7}, Len: 3})}

	assert.Equal(t, "in.js:2:1: error: Bad thing\n  foo: 1 }\n  ~~~\n",
		msg.String(StderrOptions{IncludeSource: true}, TerminalInfo{}))
	assert.Equal(t, "in.js: error: Bad thing\n",
		msg.String(StderrOptions{}, TerminalInfo{}))
	assert.Equal(t, "warning: No location\n",
		Msg{Kind: Warning, Text: "No location"}.String(StderrOptions{}, TerminalInfo{}))
}

func TestDeferLogSortsMessages(t *testing.T) {
	source := Source{PrettyPath: "in.js", Contents: "ab\ncd"}
	log := NewDeferLog()
	log.AddVerbose(&source, Loc{Start: 3}, "second")
	log.AddError(&source, Loc{Start: 0}, "first")
	log.AddMsg(Msg{Kind: Warning, Text: "global"})
	require.True(t, log.HasErrors())

	msgs := log.Done()
	require.Len(t, msgs, 3)
	assert.Equal(t, "global", msgs[0].Text)
	assert.Equal(t, "first", msgs[1].Text)
	assert.Equal(t, "second", msgs[2].Text)
}

func TestWriterLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log := newWriterLog(&buf, StderrOptions{LogLevel: LevelWarning}, TerminalInfo{})
	log.AddMsg(Msg{Kind: Verbose, Text: "hidden"})
	log.AddMsg(Msg{Kind: Warning, Text: "shown"})
	log.Done()
	assert.Equal(t, "warning: shown\n", buf.String())
}

func TestWriterLogErrorLimit(t *testing.T) {
	var buf bytes.Buffer
	log := newWriterLog(&buf, StderrOptions{ErrorLimit: 1, LogLevel: LevelInfo}, TerminalInfo{})
	log.AddMsg(Msg{Kind: Error, Text: "one"})
	log.AddMsg(Msg{Kind: Error, Text: "two"})
	msgs := log.Done()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "error: one\n1 error reached (disable error limit with --error-limit=0)\n", buf.String())
}

func TestStderrOptionsForArgs(t *testing.T) {
	options := StderrOptionsForArgs([]string{"--color=false", "--log-level=verbose"})
	assert.Equal(t, ColorNever, options.Color)
	assert.Equal(t, LevelVerbose, options.LogLevel)
	assert.True(t, options.IncludeSource)
}

func TestWriterLogDefaultLevelHidesVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := newWriterLog(&buf, StderrOptions{}, TerminalInfo{})
	log.AddMsg(Msg{Kind: Verbose, Text: "hidden"})
	log.AddMsg(Msg{Kind: Error, Text: "shown"})
	log.Done()
	assert.Equal(t, "error: shown\n1 error\n", buf.String())
}
