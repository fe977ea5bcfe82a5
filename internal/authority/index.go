package authority

// PermissionIndex maps qualified operation identifiers (e.g. "GroupView.put")
// to the permission key gating them. Operations absent from the index are
// open to any authenticated caller: guarding is opt-in via configuration.
type PermissionIndex struct {
	keys map[string]string
}

// BuildIndex walks the tree once and records every leaf that carries a
// qualified identifier. On a duplicate qualified the last entry wins; the
// configuration is expected not to duplicate. The result is immutable and
// safe for unsynchronized concurrent reads.
func BuildIndex(tree Tree) *PermissionIndex {
	keys := make(map[string]string)
	for _, section := range tree {
		for _, tab := range section.Children {
			for _, op := range tab.Children {
				if op.Qualified != "" {
					keys[op.Qualified] = op.Key
				}
			}
		}
	}
	return &PermissionIndex{keys: keys}
}

// Lookup returns the permission key for a qualified operation identifier.
func (idx *PermissionIndex) Lookup(qualified string) (string, bool) {
	key, ok := idx.keys[qualified]
	return key, ok
}

// Len reports how many operations are gated.
func (idx *PermissionIndex) Len() int {
	return len(idx.keys)
}
