package forward

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/tag"
	"github.com/go-radx/dicomforward/dicom/value"
)

// getUint16 reads a required integer-valued element as a uint16.
func getUint16(ds *dicom.DataSet, t tag.Tag) (uint16, error) {
	elem, err := ds.Get(t)
	if err != nil {
		return 0, fmt.Errorf("missing required element %s: %w", t, err)
	}
	n, err := elementInt(elem.Value())
	if err != nil {
		return 0, fmt.Errorf("element %s: %w", t, err)
	}
	return uint16(n), nil
}

// getUint16WithDefault reads an optional integer-valued element, returning
// def when the tag is absent.
func getUint16WithDefault(ds *dicom.DataSet, t tag.Tag, def uint16) (uint16, error) {
	if !ds.Contains(t) {
		return def, nil
	}
	return getUint16(ds, t)
}

func elementInt(v value.Value) (int64, error) {
	if iv, ok := v.(*value.IntValue); ok {
		ints := iv.Ints()
		if len(ints) == 0 {
			return 0, fmt.Errorf("empty integer value")
		}
		return ints[0], nil
	}
	return parseIntLoose(v.String())
}

// parseIntLoose parses the first whitespace/backslash-delimited numeric
// token in s, tolerating the DS/IS string encodings used by some elements.
func parseIntLoose(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\\ "); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return 0, fmt.Errorf("empty numeric string")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return int(f), nil
}
