/*
Package bus provides access to a singleton event bus, allowing the library to publish events about
long-running operations without knowing who (if anyone) is listening.
*/
package bus

import "github.com/wagoodman/go-partybus"

var publisher partybus.Publisher
var active bool

// SetPublisher sets the singleton event publisher for use within the library. Setting a nil
// publisher (or never setting one) silently discards all published events.
func SetPublisher(p partybus.Publisher) {
	publisher = p
	if p != nil {
		active = true
	}
}

// Publish an event onto the bus. If there is no bus set by the calling application, this does nothing.
func Publish(event partybus.Event) {
	if active {
		publisher.Publish(event)
	}
}
