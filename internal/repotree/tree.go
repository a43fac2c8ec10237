// Package repotree turns flat path listings into the nested, sorted trees shown to
// users, for both remote repositories and local directories.
package repotree

import (
	"sort"
	"strings"

	"codeexplainer/internal/models"
)

// Entry is one path of a flat listing, slash separated and relative to the root.
type Entry struct {
	Path string
	Dir  bool
}

type node struct {
	name     string
	path     string
	dir      bool
	children map[string]*node
}

// Build nests entries into a hierarchy. Intermediate directories are created as
// needed. At every level directories come before files, then names sort
// lexicographically.
func Build(entries []Entry) []models.TreeNode {
	root := &node{dir: true, children: map[string]*node{}}

	for _, entry := range entries {
		segments := strings.Split(strings.Trim(entry.Path, "/"), "/")
		current := root
		for i, seg := range segments {
			if seg == "" {
				continue
			}
			isLast := i == len(segments)-1
			child, ok := current.children[seg]
			if !ok {
				child = &node{
					name:     seg,
					path:     strings.Join(segments[:i+1], "/"),
					dir:      !isLast || entry.Dir,
					children: map[string]*node{},
				}
				current.children[seg] = child
			}
			current = child
		}
	}
	return toNodes(root.children)
}

func toNodes(children map[string]*node) []models.TreeNode {
	nodes := make([]models.TreeNode, 0, len(children))
	for _, child := range children {
		n := models.TreeNode{Name: child.name, Path: child.path, Type: models.NodeFile}
		if child.dir {
			n.Type = models.NodeDir
			n.Children = toNodes(child.children)
		}
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Type != nodes[j].Type {
			return nodes[i].Type == models.NodeDir
		}
		return nodes[i].Name < nodes[j].Name
	})
	return nodes
}
