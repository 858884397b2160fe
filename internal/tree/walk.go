// Package tree linearizes a conversation's mapping into its active path:
// the single root-to-leaf chain the export considers current. Regenerated
// and edited branches survive in the mapping as earlier siblings; only the
// active path belongs in the final transcript.
package tree

import (
	"fmt"
	"iter"
	"slices"

	"github.com/openlmtools/lmimport/internal/models"
)

// FindRoot returns the id of the mapping's root node (nil parent).
func FindRoot(mapping map[string]models.Node) (string, error) {
	root := ""
	for id, node := range mapping {
		if node.Parent != nil {
			continue
		}
		if root != "" {
			return "", fmt.Errorf("mapping has multiple roots (%s, %s)", root, id)
		}
		root = id
	}
	if root == "" {
		return "", fmt.Errorf("mapping has no root node")
	}
	return root, nil
}

// ActivePath yields the nodes of the conversation's active path in order,
// root first. When the export carries a valid current_node pointer the
// path is the parent chain of that node; otherwise we descend from the
// root taking the last child at each level, which is where the export
// places the most recent edit or regeneration.
//
// Structural nodes (no message) are yielded too; transcript filtering is
// the caller's concern. A malformed mapping (no root, cycle, dangling
// reference) surfaces as a non-nil error on the final yield. The sequence
// is single-use.
func ActivePath(c models.Conversation) iter.Seq2[models.Node, error] {
	if node, ok := c.Mapping[c.CurrentNode]; c.CurrentNode != "" && ok {
		return climbFrom(c.Mapping, node)
	}
	return descendLastChild(c.Mapping)
}

// climbFrom follows parent ids from leaf to root, then replays the chain
// in conversation order.
func climbFrom(mapping map[string]models.Node, leaf models.Node) iter.Seq2[models.Node, error] {
	return func(yield func(models.Node, error) bool) {
		path := []models.Node{leaf}
		visited := map[string]bool{leaf.ID: true}

		node := leaf
		for node.Parent != nil {
			parent, ok := mapping[*node.Parent]
			if !ok {
				yield(models.Node{}, fmt.Errorf("node %s references missing parent %s", node.ID, *node.Parent))
				return
			}
			if visited[parent.ID] {
				yield(models.Node{}, fmt.Errorf("parent chain cycles at node %s", parent.ID))
				return
			}
			visited[parent.ID] = true
			path = append(path, parent)
			node = parent
		}

		slices.Reverse(path)
		for _, n := range path {
			if !yield(n, nil) {
				return
			}
		}
	}
}

// descendLastChild walks from the root following the last child id at
// each node until a leaf.
func descendLastChild(mapping map[string]models.Node) iter.Seq2[models.Node, error] {
	return func(yield func(models.Node, error) bool) {
		rootID, err := FindRoot(mapping)
		if err != nil {
			yield(models.Node{}, err)
			return
		}

		visited := make(map[string]bool, len(mapping))
		node := mapping[rootID]
		for {
			if visited[node.ID] {
				yield(models.Node{}, fmt.Errorf("child chain cycles at node %s", node.ID))
				return
			}
			visited[node.ID] = true

			if !yield(node, nil) {
				return
			}
			if len(node.Children) == 0 {
				return
			}

			lastID := node.Children[len(node.Children)-1]
			next, ok := mapping[lastID]
			if !ok {
				yield(models.Node{}, fmt.Errorf("node %s references missing child %s", node.ID, lastID))
				return
			}
			node = next
		}
	}
}
