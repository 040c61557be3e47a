package renderer

import (
	"fmt"
	"strings"

	"github.com/Akaiko1/image-viewer/internal/scanner"
)

const (
	// Icons
	folderIcon = "📁"
	imageIcon  = "🖼"
	fileIcon   = "📄"

	// Tree drawing characters
	treeBranch     = "├──"
	treeLastBranch = "└──"
	treeSpacing    = "    "
	treeConnection = "│   "
)

// TreeRenderer defines the interface for rendering tree snapshots.
type TreeRenderer interface {
	RenderTree(result *scanner.ScanResult) string
}

// StandardTreeRenderer draws box-drawing trees. With ImagesOnly set, plain
// files are left out and only directories and images are drawn.
type StandardTreeRenderer struct {
	ImagesOnly bool
}

// RenderTree renders a snapshot as a formatted string.
func (r *StandardTreeRenderer) RenderTree(result *scanner.ScanResult) string {
	if result == nil || result.Root == nil {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Images under: %s\n", result.RootPath))
	builder.WriteString(fmt.Sprintf("%d entries, %d images\n", result.NodeCount, result.ImageCount))
	builder.WriteString(strings.Repeat("=", 50) + "\n")

	r.renderChildren(&builder, result.Root, "")
	return builder.String()
}

func (r *StandardTreeRenderer) renderChildren(builder *strings.Builder, node *scanner.TreeNode, prefix string) {
	children := r.visible(node.Children)
	for i, child := range children {
		connector, nextPrefix := treeBranch, prefix+treeConnection
		if i == len(children)-1 {
			connector, nextPrefix = treeLastBranch, prefix+treeSpacing
		}
		builder.WriteString(fmt.Sprintf("%s%s %s %s\n", prefix, connector, icon(child), label(child)))
		if child.IsDir {
			r.renderChildren(builder, child, nextPrefix)
		}
	}
}

func (r *StandardTreeRenderer) visible(nodes []*scanner.TreeNode) []*scanner.TreeNode {
	if !r.ImagesOnly {
		return nodes
	}
	out := make([]*scanner.TreeNode, 0, len(nodes))
	for _, n := range nodes {
		if n.IsDir || n.IsImage {
			out = append(out, n)
		}
	}
	return out
}

func icon(node *scanner.TreeNode) string {
	switch {
	case node.IsDir:
		return folderIcon
	case node.IsImage:
		return imageIcon
	}
	return fileIcon
}

func label(node *scanner.TreeNode) string {
	if node.IsDir {
		return node.Name + "/"
	}
	return node.Name
}
