package editable

import "github.com/leapstack-labs/editable/internal/pathutil"

// ResolvePath returns the content path of a node. An explicit path is
// returned unchanged; otherwise it is derived from the page and item paths.
// The result may be "", which addresses the root model.
func ResolvePath(explicitPath, pagePath, itemPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	return pathutil.Derive(pathutil.Options{PagePath: pagePath, ItemPath: itemPath})
}
