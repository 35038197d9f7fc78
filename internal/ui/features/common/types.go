// Package common provides shared types and utilities for UI features.
package common

// TreeNode represents a node in the content tree.
type TreeNode struct {
	Name     string
	Path     string
	Type     string // "folder" or "model"
	Children []TreeNode
}

// PageData holds what the page shell renders around a feature's content.
type PageData struct {
	Title string
	// IsDev adds the hot reload listener.
	IsDev bool
	// Authoring marks the page as rendered for the authoring tool.
	Authoring bool
}
