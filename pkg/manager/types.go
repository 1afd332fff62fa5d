// Package manager provides the package model shared by the apt client and
// its front-ends.
package manager

import "errors"

// Package is one search result as shown in the package list.
type Package struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Checked     bool   `json:"checked"`
}

// Operation is a mutating package-manager action.
type Operation string

const (
	OpInstall Operation = "install"
	OpRemove  Operation = "remove"
	OpUpdate  Operation = "update"
	OpUpgrade Operation = "upgrade"
)

// DoneMarker is the line appended to an operation's output once it finishes.
const DoneMarker = "Done."

// ErrNoSelection is returned when install or remove is asked for with no packages.
var ErrNoSelection = errors.New("no packages selected")

// ErrUnknownOperation is returned for an Operation outside the four known ones.
var ErrUnknownOperation = errors.New("unknown operation")

// Operations lists every mutating operation in button order.
func Operations() []Operation {
	return []Operation{OpInstall, OpRemove, OpUpgrade, OpUpdate}
}

// NeedsSelection reports whether the operation acts on named packages.
func (op Operation) NeedsSelection() bool {
	return op == OpInstall || op == OpRemove
}

// Valid reports whether op is one of the known operations.
func (op Operation) Valid() bool {
	switch op {
	case OpInstall, OpRemove, OpUpdate, OpUpgrade:
		return true
	}
	return false
}

// Args returns the apt argument vector for the operation.
func (op Operation) Args(packages []string) ([]string, error) {
	switch op {
	case OpInstall, OpRemove:
		if len(packages) == 0 {
			return nil, ErrNoSelection
		}
		args := make([]string, 0, len(packages)+2)
		args = append(args, string(op), "-y")
		return append(args, packages...), nil
	case OpUpdate:
		return []string{"update"}, nil
	case OpUpgrade:
		return []string{"upgrade", "-y"}, nil
	}
	return nil, ErrUnknownOperation
}

// Title returns the label used for the operation's button.
func (op Operation) Title() string {
	switch op {
	case OpInstall:
		return "Install"
	case OpRemove:
		return "Remove"
	case OpUpdate:
		return "Update list"
	case OpUpgrade:
		return "Upgrade all"
	}
	return string(op)
}
