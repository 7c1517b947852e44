package log

import "io"

// CloseAndLogError closes the given closer and reports any close failure at the debug level.
func CloseAndLogError(closer io.Closer, location string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		Debugf("failed to close %s: %+v", location, err)
	}
}
