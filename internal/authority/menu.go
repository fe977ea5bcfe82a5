package authority

// PruneMenu builds the caller-specific navigation menu: a deep copy of the
// tree with all leaf operations stripped and every branch the caller cannot
// act on removed.
//
// Admins keep every tab (the menu only needs to show that the page exists);
// non-admins keep a tab iff at least one of its leaf keys is in their key
// set. Sections left without tabs are removed. The shared tree is never
// mutated.
func PruneMenu(tree Tree, keys []string, isAdmin bool) Tree {
	if !isAdmin && len(keys) == 0 {
		return Tree{}
	}

	keySet := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keySet[k] = struct{}{}
	}

	menu := tree.Clone()
	// Iterate backwards so in-place removal doesn't skip entries.
	for i := len(menu) - 1; i >= 0; i-- {
		tabs := menu[i].Children
		for j := len(tabs) - 1; j >= 0; j-- {
			if isAdmin {
				tabs[j].Children = nil
				continue
			}
			if anyKeyGranted(tabs[j].Children, keySet) {
				tabs[j].Children = nil
			} else {
				tabs = append(tabs[:j], tabs[j+1:]...)
			}
		}
		menu[i].Children = tabs
		if len(tabs) == 0 {
			menu = append(menu[:i], menu[i+1:]...)
		}
	}
	return menu
}

func anyKeyGranted(ops []Operation, keySet map[string]struct{}) bool {
	for _, op := range ops {
		if _, ok := keySet[op.Key]; ok {
			return true
		}
	}
	return false
}
