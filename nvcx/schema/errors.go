package schema

import "fmt"

// NewerSchemaError indicates a file was written by an application that supports a later format
// version than this one; upgrading the application is the only safe way to read the file.
type NewerSchemaError struct {
	Have Version // version declared by the file
	Want Version // version supported by this application
}

func (e *NewerSchemaError) Error() string {
	return fmt.Sprintf("unsupported schema version: have=%s want=%s (file was written by a newer application)", e.Have, e.Want)
}

// OlderSchemaError indicates a file predates the oldest format version this application reads.
type OlderSchemaError struct {
	Have Version // version declared by the file
	Want Version // version supported by this application
}

func (e *OlderSchemaError) Error() string {
	return fmt.Sprintf("unsupported schema version: have=%s want=%s (file was written by an outdated application)", e.Have, e.Want)
}
