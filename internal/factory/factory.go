// Package factory composes a metadata record and an emitted body into the
// two output shapes a host charting runtime consumes: an embeddable
// factory closure and a standalone native-ABI factory source file
// (spec.md §4.5).
package factory

import "strings"

// SanitizeID replaces every character outside [A-Za-z0-9_] with '_'
// (spec.md §6, "Indicator header stability").
func SanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// FactoryName is the stable emitted indicator name `User_<safeId>`.
func FactoryName(id string) string { return "User_" + SanitizeID(id) }

// MetainfoID is the stable metainfo id `User_<safeId>@tv-basicstudies-1`.
func MetainfoID(id string) string { return FactoryName(id) + "@tv-basicstudies-1" }

func indentLines(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
