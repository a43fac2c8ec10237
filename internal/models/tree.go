package models

// NodeType distinguishes files from directories in a repository tree.
type NodeType string

const (
	NodeFile NodeType = "file"
	NodeDir  NodeType = "dir"
)

// TreeNode is one entry of a hierarchical file listing.
type TreeNode struct {
	Name     string     `json:"name" yaml:"name"`
	Path     string     `json:"path" yaml:"path"`
	Type     NodeType   `json:"type" yaml:"type"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// RepoTree is the resolved repository and its listing.
type RepoTree struct {
	Owner  string     `json:"owner" yaml:"owner"`
	Repo   string     `json:"repo" yaml:"repo"`
	Branch string     `json:"branch" yaml:"branch"`
	Tree   []TreeNode `json:"tree" yaml:"tree"`
}

// FileContent is a single fetched file.
type FileContent struct {
	Content  string `json:"content" yaml:"content"`
	Language string `json:"language" yaml:"language"`
}
