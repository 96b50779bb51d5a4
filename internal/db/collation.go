package db

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	sqlite "modernc.org/sqlite"
)

// SQL names registered on every connection
const (
	// collationFrench orders text the way a French reader expects:
	// accents and case sort next to their base letter
	collationFrench = "french"

	// foldFunction returns the Unicode case fold of its text argument
	foldFunction = "fold"
)

func init() {
	sqlite.MustRegisterCollationUtf8(collationFrench, compareFrench)
	sqlite.MustRegisterDeterministicScalarFunction(foldFunction, 1, foldValue)
}

// Collators keep internal buffers and cannot be shared between connections
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.French)
)

func compareFrench(left, right string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	if c := collator.CompareString(left, right); c != 0 {
		return c
	}
	// Only identical strings compare equal
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	}
	return 0
}

// foldString folds s for case-insensitive matching, including accented letters
func foldString(s string) string {
	return cases.Fold().String(s)
}

func foldValue(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return foldString(v), nil
	case []byte:
		return foldString(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", foldFunction, v)
	}
}
