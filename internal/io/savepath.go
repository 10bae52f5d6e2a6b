package io

import (
	"fmt"
	"path"
	"strings"

	"valo-editor/internal/imgerr"
)

// DefaultSavePath is used when a save request names no path.
const DefaultSavePath = "download/image_01.png"

var saveExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// SanitizePath turns a client supplied path into a safe relative path with a
// known image extension. Absolute paths and parent traversal are rejected.
func SanitizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		p = DefaultSavePath
	}

	norm := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if path.IsAbs(norm) || isVolumePath(norm) || norm == ".." || strings.HasPrefix(norm, "../") {
		return "", fmt.Errorf("%w: %s", imgerr.ErrPathValidation, p)
	}
	if norm == "." {
		norm = DefaultSavePath
	}

	ext := strings.ToLower(path.Ext(norm))
	for _, allowed := range saveExtensions {
		if ext == allowed {
			return norm, nil
		}
	}
	return norm + ".png", nil
}

// isVolumePath catches Windows drive paths such as "C:/x" on any host.
func isVolumePath(p string) bool {
	return len(p) >= 2 && p[1] == ':' &&
		((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}
