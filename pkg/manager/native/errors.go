package native

import (
	"regexp"
	"strings"
)

// FailureKind classifies why an apt run failed.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailurePackageNotFound
	FailureLocked
	FailureBrokenDependencies
	FailureNeedsPassword
	FailurePermissionDenied
)

// Failure is a diagnosis of a failed apt run, built from its log lines.
type Failure struct {
	Kind       FailureKind
	Packages   []string // Packages named in the error, if any
	Suggestion string
}

// Regular expressions for parsing apt errors
var (
	// Matches: "E: Unable to locate package foo"
	notFoundPattern = regexp.MustCompile(`^E: Unable to locate package (\S+)`)

	// Matches: "E: Package 'foo' has no installation candidate"
	noCandidatePattern = regexp.MustCompile(`^E: Package '([^']+)' has no installation candidate`)

	// Matches: "E: Could not get lock /var/lib/dpkg/lock-frontend. It is held by process 1234 (apt)"
	// and "E: Unable to acquire the dpkg frontend lock"
	lockPattern = regexp.MustCompile(`^E: (Could not get lock|Unable to acquire the dpkg frontend lock|Unable to lock)`)

	// Matches: " foo : Depends: bar but it is not going to be installed"
	unmetPattern = regexp.MustCompile(`^\s*(\S+) : Depends: `)

	// Matches: "E: Unmet dependencies." and "E: Unable to correct problems, you have held broken packages."
	brokenPattern = regexp.MustCompile(`^E: (Unmet dependencies|Unable to correct problems)`)

	// Matches: "E: Could not open lock file ... (13: Permission denied)" and "are you root?"
	permissionPattern = regexp.MustCompile(`Permission denied|are you root\?`)
)

// sudoPasswordMessage is what "sudo -n" prints when credentials are not cached.
const sudoPasswordMessage = "sudo: a password is required"

// Diagnose inspects the output of a failed run. It returns nil when no
// known failure pattern is present.
func Diagnose(lines []string) *Failure {
	var f *Failure
	set := func(kind FailureKind, suggestion string) {
		if f == nil {
			f = &Failure{Kind: kind, Suggestion: suggestion}
		}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, sudoPasswordMessage):
			set(FailureNeedsPassword, "Run 'sudo -v' in a terminal first to cache credentials")
		case lockPattern.MatchString(line):
			set(FailureLocked, "Another package manager is running. Wait for it to finish and try again")
		case permissionPattern.MatchString(line):
			set(FailurePermissionDenied, "Enable use_sudo or run as root")
		case notFoundPattern.MatchString(line):
			set(FailurePackageNotFound, "Run 'Update list' to refresh the package index")
			if f.Kind == FailurePackageNotFound {
				f.addPackage(notFoundPattern.FindStringSubmatch(line)[1])
			}
		case noCandidatePattern.MatchString(line):
			set(FailurePackageNotFound, "Run 'Update list' to refresh the package index")
			if f.Kind == FailurePackageNotFound {
				f.addPackage(noCandidatePattern.FindStringSubmatch(line)[1])
			}
		case brokenPattern.MatchString(line):
			set(FailureBrokenDependencies, "Run 'Upgrade all' first, then try again")
		case unmetPattern.MatchString(line):
			set(FailureBrokenDependencies, "Run 'Upgrade all' first, then try again")
			if f.Kind == FailureBrokenDependencies {
				f.addPackage(unmetPattern.FindStringSubmatch(line)[1])
			}
		}
	}

	return f
}

func (f *Failure) addPackage(name string) {
	for _, p := range f.Packages {
		if p == name {
			return
		}
	}
	f.Packages = append(f.Packages, name)
}

// String returns a one-line summary suitable for a status bar.
func (f *Failure) String() string {
	var what string
	switch f.Kind {
	case FailurePackageNotFound:
		what = "Package not found"
	case FailureLocked:
		what = "Package database is locked"
	case FailureBrokenDependencies:
		what = "Unmet dependencies"
	case FailureNeedsPassword:
		what = "sudo needs a password"
	case FailurePermissionDenied:
		what = "Permission denied"
	default:
		what = "Operation failed"
	}

	if len(f.Packages) > 0 {
		what += ": " + strings.Join(f.Packages, ", ")
	}
	if f.Suggestion != "" {
		what += ". " + f.Suggestion
	}
	return what
}
