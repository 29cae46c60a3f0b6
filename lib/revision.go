package lib

import (
	"strings"

	vlib "github.com/mcuadros/go-version"
)

// SupportedRevision is the newest G85 format revision this package has been
// checked against.
const SupportedRevision = "0703"

/*
	"SEMI G85-0703" -> "0703", "G85-1101" -> "1101"
*/
func revisionNumber(rev string) string {
	if i := strings.LastIndex(rev, "-"); i != -1 {
		return strings.TrimSpace(rev[i+1:])
	}

	return ""
}

// RevisionSupported reports whether a FormatRevision attribute names a
// revision no newer than SupportedRevision. Empty or unrecognised values are
// treated as supported since the serializer writes the default revision for
// them.
func RevisionSupported(rev string) bool {
	n := revisionNumber(rev)
	if n == "" {
		return true
	}

	return vlib.CompareSimple(n, SupportedRevision) <= 0
}
