package dictionary

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrDictionaryDirectoryMissing is returned when the sysdic artifact
	// path does not exist, or is missing one of its required files.
	ErrDictionaryDirectoryMissing = errors.New("dictionary: directory missing")

	// ErrDecode is returned when the Viterbi decoder reaches EOS with no
	// finite-cost path, which indicates a dictionary with no DEFAULT
	// unknown-word fallback.
	ErrDecode = errors.New("dictionary: decode error")

	// ErrInitialization is returned when the process-wide singleton
	// dictionary handle fails to materialize.
	ErrInitialization = errors.New("dictionary: initialization error")
)

// InvalidDictionaryError reports a parse or validation failure in one of
// the sysdic artifact files.
type InvalidDictionaryError struct {
	Reason string
}

func (e *InvalidDictionaryError) Error() string {
	return fmt.Sprintf("dictionary: invalid dictionary: %s", e.Reason)
}

func newInvalidDictionary(format string, args ...any) error {
	return &InvalidDictionaryError{Reason: fmt.Sprintf(format, args...)}
}

// InvalidConnectionIDError reports a trans_cost call with an out-of-bounds
// left/right context id.
type InvalidConnectionIDError struct {
	LeftID, RightID uint16
}

func (e *InvalidConnectionIDError) Error() string {
	return fmt.Sprintf("dictionary: invalid connection id: left=%d right=%d", e.LeftID, e.RightID)
}
