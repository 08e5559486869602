package api

import (
	"errors"
	"testing"

	"github.com/evanw/propmangle/internal/logger"
	"github.com/evanw/propmangle/internal/mangler"
	"github.com/evanw/propmangle/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesOfKind(t *testing.T) {
	msgs := []logger.Msg{
		{Kind: logger.Error, Text: "first"},
		{Kind: logger.Warning, Text: "second", Location: &logger.MsgLocation{File: "a.js", Line: 2, Column: 3, Length: 4, LineText: "text"}},
		{Kind: logger.Verbose, Text: "third"},
		{Kind: logger.Error, Text: "fourth"},
	}

	assert.Equal(t, []Message{{Text: "first"}, {Text: "fourth"}}, messagesOfKind(logger.Error, msgs))
	assert.Equal(t, []Message{{Text: "second", Location: &Location{File: "a.js", Line: 2, Column: 3, Length: 4, LineText: "text"}}},
		messagesOfKind(logger.Warning, msgs))
	assert.Nil(t, messagesOfKind(logger.Error, nil))
}

func TestValidateLogLevel(t *testing.T) {
	assert.Equal(t, logger.LevelVerbose, validateLogLevel(LogLevelVerbose))
	assert.Equal(t, logger.LevelError, validateLogLevel(LogLevelError))
	assert.Panics(t, func() { validateLogLevel(LogLevel(100)) })
	assert.Panics(t, func() { validateColor(StderrColor(100)) })
}

func TestAddMangleError(t *testing.T) {
	source := test.SourceForTest("a\n/* @mangle [[]] */")
	log := logger.NewDeferLog()

	addMangleError(log, &source, &mangler.UnsupportedDirectiveItemError{
		Range: logger.Range{Loc: logger.Loc{Start: 14}, Len: 2},
		Item:  "[]",
	})
	addMangleError(log, &source, errors.New("something else"))

	msgs := log.Done()
	require.Len(t, msgs, 2)

	// Messages without a location sort first
	assert.Equal(t, "something else", msgs[0].Text)
	assert.Nil(t, msgs[0].Location)
	assert.Equal(t, "Unsupported @mangle item []", msgs[1].Text)
	assert.Equal(t, &logger.MsgLocation{
		File:     "<stdin>",
		Line:     2,
		Column:   12,
		Length:   2,
		LineText: "/* @mangle [[]] */",
	}, msgs[1].Location)
}
