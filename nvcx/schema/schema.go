/*
Package schema describes the .nvcx collection exchange format: the document type definition,
the format version produced by this library, and the compatibility rules applied to the
version attribute found in files.
*/
package schema

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MajorVersion of the .nvcx format written by this library. Structural changes that older
	// readers cannot tolerate increment this value.
	MajorVersion = 1

	// MinorVersion of the .nvcx format written by this library. Backward compatible additions
	// increment this value.
	MinorVersion = 0

	// FileExtension is the canonical extension for collection files.
	FileExtension = ".nvcx"

	// RootElement is the name of the document root element.
	RootElement = "COLLECTION"

	// VersionAttribute is the attribute on the root element that carries the format version.
	VersionAttribute = "version"
)

//go:embed nvcx_1_0.dtd
var definition string

// Definition returns the DTD for the current .nvcx format. The DTD is informational only:
// readers perform no validation against it and written files carry no document type declaration.
func Definition() string {
	return definition
}

// Version is a (major, minor) format version pair, as carried by the version attribute on the
// root element of a collection file.
type Version struct {
	Major int
	Minor int
}

// Current returns the format version this library writes.
func Current() Version {
	return Version{Major: MajorVersion, Minor: MinorVersion}
}

// Parse interprets a version attribute value of the form "<major>.<minor>".
func Parse(value string) (Version, error) {
	fields := strings.Split(value, ".")
	if len(fields) != 2 {
		return Version{}, fmt.Errorf("invalid version %q: expected <major>.<minor>", value)
	}

	major, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version in %q: %w", value, err)
	}

	minor, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version in %q: %w", value, err)
	}

	return Version{Major: major, Minor: minor}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns a negative number when v is older than other, zero when they are equal, and a
// positive number when v is newer.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return v.Major - other.Major
	}
	return v.Minor - other.Minor
}

// Check determines whether a file declaring version v can be read by an application that
// supports the given version. Files with a different major version are always rejected; files
// with a newer minor version are rejected since they may carry elements this application would
// silently drop on rewrite.
func (v Version) Check(supported Version) error {
	switch {
	case v.Major > supported.Major:
		return &NewerSchemaError{Have: v, Want: supported}
	case v.Major < supported.Major:
		return &OlderSchemaError{Have: v, Want: supported}
	case v.Minor > supported.Minor:
		return &NewerSchemaError{Have: v, Want: supported}
	}
	return nil
}
