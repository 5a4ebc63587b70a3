package statement

import "errors"

// Document-level failures. Callers classify with errors.Is; everything the
// pipeline returns wraps exactly one of these.
var (
	// ErrUnknownBank means the bank identifier is not in the catalog.
	ErrUnknownBank = errors.New("unknown bank identifier")

	// ErrAuthentication means the document is encrypted and the supplied
	// password was missing or wrong.
	ErrAuthentication = errors.New("document password missing or incorrect")

	// ErrUnreadableDocument means the bytes could not be parsed as any
	// supported document type.
	ErrUnreadableDocument = errors.New("document could not be read")

	// ErrFormatMismatch means the document was readable but none of its
	// pages carried the layout the selected extractor expects.
	ErrFormatMismatch = errors.New("document does not match the selected bank's statement format")
)

// Hint returns a corrective suggestion suitable for showing to the person who
// uploaded the document, or "" for errors with no obvious user action.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrUnknownBank):
		return "Select one of the supported banks, or choose Other Banks."
	case errors.Is(err, ErrAuthentication):
		return "Check the statement password and upload the file again."
	case errors.Is(err, ErrUnreadableDocument):
		return "Re-download the original statement from your bank and upload it unmodified."
	case errors.Is(err, ErrFormatMismatch):
		return "Verify the selected bank matches this statement, or try the Other Banks option."
	}
	return ""
}
