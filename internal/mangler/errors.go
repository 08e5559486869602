package mangler

import (
	"fmt"

	"github.com/evanw/propmangle/internal/logger"
)

// MalformedDirectiveError means a "@mangle" payload is not a list of strings
// and string pairs. "Range" covers the payload in the source file.
type MalformedDirectiveError struct {
	Range   logger.Range
	Payload string
	Err     error
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("Malformed @mangle directive %s: %s", e.Payload, e.Err.Error())
}

func (e *MalformedDirectiveError) Unwrap() error {
	return e.Err
}

// UnsupportedDirectiveItemError means one entry of a well-formed "@mangle"
// list is neither a string nor a pair of strings. "Item" is the entry
// printed as compact JSON.
type UnsupportedDirectiveItemError struct {
	Range logger.Range
	Item  string
}

func (e *UnsupportedDirectiveItemError) Error() string {
	return fmt.Sprintf("Unsupported @mangle item %s", e.Item)
}
