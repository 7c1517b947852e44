package nvcxerr

var (
	// ErrMissingBooks indicates that at least one book entry points at a manuscript file that
	// does not exist and --fail-on-missing was requested.
	ErrMissingBooks = NewExpectedErr("discovered missing book files")
)
