package ui

import (
	"fmt"
	"io"

	"github.com/wagoodman/go-partybus"

	nvcxEventParsers "github.com/nvcollection/nvcx/nvcx/event/parsers"
)

func handleCollectionCheckFinished(event partybus.Event, reportOutput io.Writer) error {
	// show the report to stdout
	pres, err := nvcxEventParsers.ParseCollectionCheckFinished(event)
	if err != nil {
		return fmt.Errorf("bad CollectionCheckFinished event: %w", err)
	}

	if err := pres.Present(reportOutput); err != nil {
		return fmt.Errorf("unable to show check report: %w", err)
	}
	return nil
}

func handleNonRootCommandFinished(event partybus.Event, reportOutput io.Writer) error {
	// show the report to stdout
	result, err := nvcxEventParsers.ParseNonRootCommandFinished(event)
	if err != nil {
		return fmt.Errorf("bad NonRootCommandFinished event: %w", err)
	}

	if _, err := reportOutput.Write([]byte(*result)); err != nil {
		return fmt.Errorf("unable to show command report: %w", err)
	}
	return nil
}
