package assets

import (
	"regexp"
	"strings"
)

// uploadMarker separates the host part of an asset URL from the asset path.
const uploadMarker = "/upload/"

var versionSegment = regexp.MustCompile(`^v[0-9]+/`)

// IsVersionSegment reports whether a path segment would be taken for an
// asset version and dropped when resolving references.
func IsVersionSegment(segment string) bool {
	return !strings.Contains(segment, "/") && versionSegment.MatchString(segment+"/")
}

// ExtractAssetID returns the identifier of the asset an image reference points
// at, or false when the reference carries no /upload/ marker or nothing usable
// after it. A leading version segment (v1700000000/) and the trailing file
// extension are dropped, so rebuilding a URL from the id plus any extension
// yields the same id again. References whose id would begin with a second
// version-like segment (/upload/v1/v2/img.jpg) are reported as unresolvable.
func ExtractAssetID(ref string) (string, bool) {
	idx := strings.Index(ref, uploadMarker)
	if idx < 0 {
		return "", false
	}

	rest := ref[idx+len(uploadMarker):]
	if cut := strings.IndexAny(rest, "?#"); cut >= 0 {
		rest = rest[:cut]
	}
	rest = strings.TrimLeft(rest, "/")

	if loc := versionSegment.FindStringIndex(rest); loc != nil {
		rest = rest[loc[1]:]
	}
	// An id that itself starts like a version would lose that segment when
	// resolved again, so it is not resolvable.
	if versionSegment.MatchString(rest) {
		return "", false
	}

	if dot := strings.LastIndex(rest, "."); dot >= 0 && !strings.Contains(rest[dot:], "/") {
		rest = rest[:dot]
	}

	rest = strings.Trim(rest, "/")
	if rest == "" {
		return "", false
	}
	return rest, true
}
