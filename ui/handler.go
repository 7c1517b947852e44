package ui

import (
	"context"
	"sync"

	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/jotframe/pkg/frame"

	nvcxEvent "github.com/nvcollection/nvcx/nvcx/event"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (r *Handler) RespondsTo(event partybus.Event) bool {
	switch event.Type {
	case nvcxEvent.CollectionCheckStarted,
		nvcxEvent.FetchingSource,
		nvcxEvent.CollectionDiffingStarted:
		return true
	default:
		return false
	}
}

func (r *Handler) Handle(ctx context.Context, fr *frame.Frame, event partybus.Event, wg *sync.WaitGroup) error {
	switch event.Type {
	case nvcxEvent.CollectionCheckStarted:
		return r.CollectionCheckStartedHandler(ctx, fr, event, wg)
	case nvcxEvent.FetchingSource:
		return r.FetchingSourceHandler(ctx, fr, event, wg)
	case nvcxEvent.CollectionDiffingStarted:
		return r.CollectionDiffingStartedHandler(ctx, fr, event, wg)
	}
	return nil
}
