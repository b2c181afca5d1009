package output

import (
	"slices"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// labelColumn is the column at which file labels start.
	labelColumn = 48
)

// TreeNode is a directory or file in a rendered path tree.
type TreeNode struct {
	Name     string
	Label    string
	IsDir    bool
	Children []*TreeNode
}

// RenderPathTree renders files below root as a tree. Keys of files are
// slash separated paths relative to root, values are labels printed next to
// the file name.
func RenderPathTree(root string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	top := &TreeNode{Name: strings.TrimSuffix(root, "/"), IsDir: true}
	for path, label := range files {
		insertPath(top, strings.Split(strings.Trim(path, "/"), "/"), label)
	}
	sortTree(top)

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(top.Name + "/"))
	sb.WriteString("\n")
	for i, child := range top.Children {
		renderNode(&sb, child, "", i == len(top.Children)-1)
	}
	return sb.String()
}

func insertPath(node *TreeNode, parts []string, label string) {
	for i, part := range parts {
		last := i == len(parts)-1

		idx := slices.IndexFunc(node.Children, func(c *TreeNode) bool { return c.Name == part })
		if idx < 0 {
			node.Children = append(node.Children, &TreeNode{Name: part, IsDir: !last})
			idx = len(node.Children) - 1
		}

		node = node.Children[idx]
		if last {
			node.Label = label
		}
	}
}

// sortTree orders directories before files, then by name.
func sortTree(node *TreeNode) {
	slices.SortFunc(node.Children, func(a, b *TreeNode) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	for _, child := range node.Children {
		sortTree(child)
	}
}

func renderNode(sb *strings.Builder, node *TreeNode, prefix string, last bool) {
	connector, childPrefix := treeEdge, prefix+treeVert
	if last {
		connector, childPrefix = treeLast, prefix+treeSpace
	}

	name := node.Name
	if node.IsDir {
		name += "/"
	}
	line := prefix + connector + name

	if node.Label != "" {
		padding := max(labelColumn-len([]rune(line)), 2)
		line += strings.Repeat(" ", padding) + StyleDim.Render(node.Label)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	for i, child := range node.Children {
		renderNode(sb, child, childPrefix, i == len(node.Children)-1)
	}
}
