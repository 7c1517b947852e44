package event

import "github.com/wagoodman/go-partybus"

const (
	AppUpdateAvailable       partybus.EventType = "nvcx-app-update-available"
	FetchingSource           partybus.EventType = "nvcx-fetching-source"
	CollectionCheckStarted   partybus.EventType = "nvcx-collection-check-started"
	CollectionCheckFinished  partybus.EventType = "nvcx-collection-check-finished"
	CollectionDiffingStarted partybus.EventType = "nvcx-collection-diffing-started"
	NonRootCommandFinished   partybus.EventType = "nvcx-non-root-command-finished"
)
