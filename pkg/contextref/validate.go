package contextref

import (
	"fmt"
	"strings"
)

// Scheme is the URI scheme that marks a string value as a context reference.
const Scheme = "plp://"

// maxPathLength bounds reference paths so malformed input cannot balloon into
// oversized storage or transport requests.
const maxPathLength = 512

// IsReference reports whether the value is shaped like a context reference.
// Shape detection is prefix-only: a true result does not imply the path is
// valid, only that it should be treated as a reference rather than literal
// content.
func IsReference(value string) bool {
	return strings.HasPrefix(value, Scheme)
}

// ValidatePath checks a context path syntactically. Valid paths have the form
//
//	plp://<collection>/<asset-id>
//
// where collection and asset-id are non-empty segments of letters, digits,
// '_', '-', or '.'. The asset-id may itself contain '/' separators for nested
// assets. Validation is purely local.
func ValidatePath(path string) error {
	if !IsReference(path) {
		return &InvalidPathError{Path: path, Reason: fmt.Sprintf("missing %s scheme prefix", Scheme)}
	}
	if len(path) > maxPathLength {
		return &InvalidPathError{Path: path, Reason: fmt.Sprintf("path exceeds %d characters", maxPathLength)}
	}

	rest := path[len(Scheme):]
	collection, assetID, ok := strings.Cut(rest, "/")
	if !ok || assetID == "" {
		return &InvalidPathError{Path: path, Reason: "expected plp://<collection>/<asset-id>"}
	}
	if collection == "" {
		return &InvalidPathError{Path: path, Reason: "empty collection segment"}
	}
	if err := validateSegment(collection); err != nil {
		return &InvalidPathError{Path: path, Reason: fmt.Sprintf("collection: %v", err)}
	}
	for _, seg := range strings.Split(assetID, "/") {
		if seg == "" {
			return &InvalidPathError{Path: path, Reason: "empty asset-id segment"}
		}
		if err := validateSegment(seg); err != nil {
			return &InvalidPathError{Path: path, Reason: fmt.Sprintf("asset-id: %v", err)}
		}
	}
	return nil
}

// SplitPath breaks a validated path into its collection and asset-id parts.
// Returns an InvalidPathError if the path fails validation.
func SplitPath(path string) (collection, assetID string, err error) {
	if err := ValidatePath(path); err != nil {
		return "", "", err
	}
	collection, assetID, _ = strings.Cut(path[len(Scheme):], "/")
	return collection, assetID, nil
}

// ExtractAssetID returns the asset-id portion of a validated path.
func ExtractAssetID(path string) (string, error) {
	_, assetID, err := SplitPath(path)
	return assetID, err
}

func validateSegment(seg string) error {
	for _, r := range seg {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return fmt.Errorf("character %q not allowed", r)
		}
	}
	if seg == "." || seg == ".." {
		return fmt.Errorf("segment %q not allowed", seg)
	}
	return nil
}
