// Package pathutil derives canonical content paths from page and item paths.
package pathutil

import "strings"

// JCRContent separates a page path from the item path of a node inside that page.
const JCRContent = "/jcr:content/"

// Options holds the identifiers a content path can be derived from.
type Options struct {
	CQPath   string
	PagePath string
	ItemPath string
}

// Derive computes the canonical content path.
//
// An explicit CQPath is returned unchanged. Otherwise the sanitized page path is
// joined with the item path through the jcr:content node. With neither a page nor
// an item path the result is "", which addresses the root model.
func Derive(opts Options) string {
	if opts.CQPath != "" {
		return opts.CQPath
	}

	page := Sanitize(opts.PagePath)
	item := strings.Trim(opts.ItemPath, "/")

	switch {
	case page != "" && item != "":
		return page + JCRContent + item
	case page != "":
		return page
	default:
		return item
	}
}

// Sanitize strips query strings, fragments, model/html selectors, duplicate
// slashes and a trailing slash from a path.
func Sanitize(path string) string {
	if path == "" {
		return ""
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, ".model.json")
	path = strings.TrimSuffix(path, ".html")

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// IsItemPath reports whether path addresses a node inside a page.
func IsItemPath(path string) bool {
	return strings.Contains(path, JCRContent)
}

// SplitItemPath splits a content path into its page and item parts.
// Paths without a jcr:content segment are returned as a page path.
func SplitItemPath(path string) (pagePath, itemPath string) {
	i := strings.Index(path, JCRContent)
	if i < 0 {
		return path, ""
	}
	return path[:i], path[i+len(JCRContent):]
}

// Parent returns the parent of a content path, or "" for top-level paths.
func Parent(path string) string {
	path = Sanitize(path)
	i := strings.LastIndex(path, "/")
	if i <= 0 {
		return ""
	}
	parent := path[:i]
	return strings.TrimSuffix(parent, "/jcr:content")
}
