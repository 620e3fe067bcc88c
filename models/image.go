package models

import (
	"encoding/json"
	"strings"
)

// FallbackImagePath is served whenever an image reference is missing or
// cannot be resolved to a usable path.
const FallbackImagePath = "/proj1.png"

// Remote object-storage hosts whose URLs are passed through untouched.
var blobHostMarkers = []string{
	"blob.core.windows.net",
	"vercel-storage.com",
	"amazonaws.com",
}

// NormalizeImageRef resolves an image reference of unknown shape into one
// canonical path string. Historical rows stored the reference as a bare
// filename, an absolute path, a remote URL, a JSON-encoded {"src": ...}
// object, or even a double-wrapped {"src": {"src": ...}} object, so this
// accepts anything and never fails: unrecognized input yields
// FallbackImagePath.
func NormalizeImageRef(raw any) (path string) {
	defer func() {
		if r := recover(); r != nil {
			path = FallbackImagePath
		}
	}()
	return NormalizeImagePath(extractImageString(raw, 0))
}

// NormalizeImagePath canonicalizes a plain string reference. Idempotent:
// applying it to its own output returns the same value.
func NormalizeImagePath(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return FallbackImagePath
	}
	for _, marker := range blobHostMarkers {
		if strings.Contains(s, marker) {
			return s
		}
	}
	if strings.Contains(s, "uploads/") {
		return "/" + strings.TrimLeft(s, "/")
	}
	if strings.HasPrefix(s, "http") || strings.HasPrefix(s, "/") {
		return s
	}
	return "/" + s
}

// extractImageString unwraps the known storage dialects down to the
// underlying string. Depth-limited so a cyclic or deeply nested value
// cannot recurse forever.
func extractImageString(raw any, depth int) string {
	if depth > 4 || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		// A column that holds a JSON-encoded object instead of a path is a
		// legacy artifact; unwrap it rather than serving literal JSON.
		if strings.HasPrefix(trimmed, "{") || strings.Contains(trimmed, `"src":`) {
			var obj map[string]any
			if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
				return ""
			}
			return extractImageString(obj, depth+1)
		}
		return v
	case map[string]any:
		return extractImageString(v["src"], depth+1)
	case Image:
		return extractImageString(v.Src, depth+1)
	case *Image:
		if v == nil {
			return ""
		}
		return extractImageString(v.Src, depth+1)
	case ImageRef:
		return extractImageString(v.Src, depth+1)
	case *ImageRef:
		if v == nil {
			return ""
		}
		return extractImageString(v.Src, depth+1)
	default:
		return ""
	}
}
