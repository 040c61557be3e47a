package scanner

import (
	"context"
	"fmt"

	"github.com/Akaiko1/image-viewer/internal/browser"
	"github.com/Akaiko1/image-viewer/internal/logging"
)

// hardDepthLimit applies even when MaxDepth is unlimited.
const hardDepthLimit = 50

// maxEntriesPerDir caps a single directory listing.
const maxEntriesPerDir = 10000

// TreeNode is one node of a snapshot of the browsable tree.
type TreeNode struct {
	Path     string
	Name     string
	IsDir    bool
	IsImage  bool
	Children []*TreeNode
	Parent   *TreeNode
}

// ScanResult contains the results of a snapshot.
type ScanResult struct {
	RootPath   string
	NodeCount  int
	ImageCount int
	Root       *TreeNode
}

// Lister lists one directory inside the root. *browser.Browser implements it.
type Lister interface {
	Children(dir string) ([]browser.Entry, error)
}

// TreeScanner walks a root-confined tree through a Lister.
type TreeScanner struct {
	lister   Lister
	maxDepth int
	log      *logging.Logger
}

// NewTreeScanner creates a scanner. maxDepth < 0 means unlimited.
func NewTreeScanner(lister Lister, maxDepth int, log *logging.Logger) *TreeScanner {
	if log == nil {
		log = logging.Nop()
	}
	return &TreeScanner{lister: lister, maxDepth: maxDepth, log: log.Component("scanner")}
}

// ScanDirectory snapshots the tree under root. Unreadable subdirectories are
// logged and kept as empty nodes.
func (s *TreeScanner) ScanDirectory(ctx context.Context, root string) (*ScanResult, error) {
	if root == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	node := &TreeNode{Path: root, Name: root, IsDir: true}
	result := &ScanResult{RootPath: root, Root: node}

	entries, err := s.lister.Children(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	if err := s.scanNode(ctx, node, entries, 0, result); err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	return result, nil
}

func (s *TreeScanner) scanNode(ctx context.Context, node *TreeNode, entries []browser.Entry, depth int, result *ScanResult) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result.NodeCount++

	if (s.maxDepth >= 0 && depth > s.maxDepth) || depth > hardDepthLimit {
		s.log.Debug().Str("path", node.Path).Int("depth", depth).Msg("depth limit reached")
		return nil
	}

	if len(entries) > maxEntriesPerDir {
		s.log.Warn().Str("path", node.Path).Int("entries", len(entries)).Msg("directory truncated")
		entries = entries[:maxEntriesPerDir]
	}

	for _, entry := range entries {
		child := &TreeNode{
			Path:    entry.Path,
			Name:    entry.Name,
			IsDir:   entry.IsDir,
			IsImage: entry.IsImage,
			Parent:  node,
		}
		node.Children = append(node.Children, child)

		if !child.IsDir {
			result.NodeCount++
			if child.IsImage {
				result.ImageCount++
			}
			continue
		}

		grandChildren, err := s.lister.Children(child.Path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", child.Path).Msg("failed to read directory")
		}
		if err := s.scanNode(ctx, child, grandChildren, depth+1, result); err != nil {
			return err
		}
	}
	return nil
}
