package common

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/editable/internal/pathutil"
)

// BuildContentTree groups content paths into a tree structure by parent path.
func BuildContentTree(paths []string) []TreeNode {
	folders := make(map[string]*TreeNode)

	for _, p := range paths {
		folder := ExtractFolder(p)

		if _, ok := folders[folder]; !ok {
			folders[folder] = &TreeNode{
				Name:     folder,
				Path:     folder,
				Type:     "folder",
				Children: []TreeNode{},
			}
		}

		folders[folder].Children = append(folders[folder].Children, TreeNode{
			Name: strings.TrimPrefix(strings.TrimPrefix(p, folder), "/"),
			Path: p,
			Type: "model",
		})
	}

	result := make([]TreeNode, 0, len(folders))
	for _, node := range folders {
		sort.Slice(node.Children, func(i, j int) bool {
			return node.Children[i].Path < node.Children[j].Path
		})
		result = append(result, *node)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// ExtractFolder returns the page a content path belongs to.
// e.g., "/content/site/en/jcr:content/root/title" -> "/content/site/en"
// e.g., "/content/site/en" -> "/content/site"
func ExtractFolder(contentPath string) string {
	if pathutil.IsItemPath(contentPath) {
		page, _ := pathutil.SplitItemPath(contentPath)
		return page
	}
	if parent := pathutil.Parent(contentPath); parent != "" {
		return parent
	}
	return "/"
}
