package ui

import (
	"github.com/wagoodman/go-partybus"
)

// UI is driven by application events and is responsible for presenting all progress and final results to the user.
type UI interface {
	Setup(unsubscribe func() error) error
	partybus.Handler
	Teardown(force bool) error
}
