// Package docs supplies per-field help text for argument specifications.
package docs

import "reflect"

// Doc holds up to three help text candidates for one field. Which candidate
// wins is decided by Text, not by the source that produced them.
type Doc struct {
	Description string // `description` tag
	Desc        string // `desc` tag
	Help        string // `help` tag (Kong alias)
}

// Text returns the highest-priority candidate that is set.
func (d Doc) Text() string {
	switch {
	case d.Description != "":
		return d.Description
	case d.Desc != "":
		return d.Desc
	default:
		return d.Help
	}
}

// Source resolves the help text candidates for a record type's field.
// Implementations must be pure and fast: they are called once per field at
// record construction.
type Source interface {
	FieldDoc(typ reflect.Type, field string) Doc
}

// TagSource is the default source, reading candidates from struct tags.
type TagSource struct{}

// FieldDoc implements Source.
func (TagSource) FieldDoc(typ reflect.Type, field string) Doc {
	sfield, ok := typ.FieldByName(field)
	if !ok {
		return Doc{}
	}

	return Doc{
		Description: sfield.Tag.Get("description"),
		Desc:        sfield.Tag.Get("desc"),
		Help:        sfield.Tag.Get("help"),
	}
}
