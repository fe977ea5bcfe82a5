// Package authority holds the navigation/permission tree loaded from the
// authority configuration document, the flat permission index derived from
// it, and the per-user menu pruning built on top of both. The tree and the
// index are built once at startup and shared read-only across requests.
package authority

import (
	"encoding/json"
	"fmt"
	"os"
)

// Operation is a leaf of the tree: one concrete action on one view. A leaf
// that names a qualified operation identifier is gated by its key; leaves
// without one are navigation-only.
type Operation struct {
	Title     string `json:"title"`
	Key       string `json:"key"`
	Qualified string `json:"qualified,omitempty"`
}

// Tab is a second-level menu entry grouping the operations of one page.
type Tab struct {
	Title    string      `json:"title"`
	Key      string      `json:"key"`
	Children []Operation `json:"children,omitempty"`
}

// Section is a top-level menu entry.
type Section struct {
	Title    string `json:"title"`
	Key      string `json:"key"`
	Children []Tab  `json:"children"`
}

// Tree is the full authority configuration. Treat it as immutable after
// Load; anything that needs to edit it must work on a Clone.
type Tree []Section

// Load reads and decodes the authority configuration document.
func Load(path string) (Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read authority config: %w", err)
	}

	var tree Tree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decode authority config: %w", err)
	}
	return tree, nil
}

// Clone returns a deep copy safe to mutate without affecting the shared tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i, section := range t {
		cloned := section
		cloned.Children = make([]Tab, len(section.Children))
		for j, tab := range section.Children {
			clonedTab := tab
			if tab.Children != nil {
				clonedTab.Children = make([]Operation, len(tab.Children))
				copy(clonedTab.Children, tab.Children)
			}
			cloned.Children[j] = clonedTab
		}
		out[i] = cloned
	}
	return out
}
