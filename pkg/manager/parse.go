package manager

import "strings"

// searchSeparator splits "name - description" lines from apt-cache search.
const searchSeparator = " - "

// ParseSearchLine splits a search result line on the first separator.
// A line without one is all name.
func ParseSearchLine(line string) Package {
	name, desc, found := strings.Cut(line, searchSeparator)
	if !found {
		return Package{Name: line}
	}
	return Package{Name: name, Description: desc}
}

// ParseSearchOutput returns one unchecked package per non-empty line, in order.
func ParseSearchOutput(output string) []Package {
	var packages []Package

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		packages = append(packages, ParseSearchLine(line))
	}

	return packages
}

// descriptionChecksum is a "Description-" field that holds a hash, not text.
const descriptionChecksum = "Description-md5:"

// ParseDescription finds the first "Description:" or "Description-xx:" line
// of apt-cache show output and returns what follows its first colon, trimmed.
func ParseDescription(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "Description:") && !strings.HasPrefix(line, "Description-") {
			continue
		}
		if strings.HasPrefix(line, descriptionChecksum) {
			continue
		}
		_, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		return strings.TrimSpace(value), true
	}

	return "", false
}
