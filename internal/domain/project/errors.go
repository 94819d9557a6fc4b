package project

import "errors"

var (
	// ErrParse is returned when the input is not well-formed XML.
	ErrParse = errors.New("project is not valid XML")

	// ErrNoTimelines is returned when the document holds no sequence container.
	ErrNoTimelines = errors.New("no timeline sequences found")
)
