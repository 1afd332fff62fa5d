package manager

// EntryList is the ordered set of packages from the most recent search.
// Entries keep output order and duplicates are not merged.
type EntryList struct {
	entries []Package
}

// NewEntryList creates a list holding the given packages.
func NewEntryList(pkgs []Package) *EntryList {
	l := &EntryList{}
	l.Replace(pkgs)
	return l
}

// Replace discards the current entries and takes a copy of pkgs, all unchecked.
func (l *EntryList) Replace(pkgs []Package) {
	l.entries = make([]Package, len(pkgs))
	copy(l.entries, pkgs)
	for i := range l.entries {
		l.entries[i].Checked = false
	}
}

// Add appends an unchecked entry.
func (l *EntryList) Add(name, description string) {
	l.entries = append(l.entries, Package{Name: name, Description: description})
}

// Clear removes all entries.
func (l *EntryList) Clear() {
	l.entries = nil
}

// Len returns the number of entries.
func (l *EntryList) Len() int {
	return len(l.entries)
}

// At returns the entry at index i.
func (l *EntryList) At(i int) (Package, bool) {
	if i < 0 || i >= len(l.entries) {
		return Package{}, false
	}
	return l.entries[i], true
}

// Toggle flips the checked flag of entry i and returns the new state.
func (l *EntryList) Toggle(i int) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	l.entries[i].Checked = !l.entries[i].Checked
	return l.entries[i].Checked
}

// SetChecked sets the checked flag of entry i.
func (l *EntryList) SetChecked(i int, checked bool) {
	if i < 0 || i >= len(l.entries) {
		return
	}
	l.entries[i].Checked = checked
}

// Checked returns the names of checked entries in list order.
func (l *EntryList) Checked() []string {
	var names []string
	for _, e := range l.entries {
		if e.Checked {
			names = append(names, e.Name)
		}
	}
	return names
}

// Entries returns a copy of all entries.
func (l *EntryList) Entries() []Package {
	out := make([]Package, len(l.entries))
	copy(out, l.entries)
	return out
}
