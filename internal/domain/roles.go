package domain

import "strings"

// RoleEquivalenceSet lists role shortnames treated as interchangeable for one report.
type RoleEquivalenceSet []string

var (
	TeacherRoles = RoleEquivalenceSet{"teacher", "editingteacher", "coursecreator", "manager"}
	StudentRoles = RoleEquivalenceSet{"student"}
	ManagerRoles = RoleEquivalenceSet{"companymanager", "companydepartmentmanager", "manager"}
)

// NormalizeRole trims and lowers a role shortname.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// Normalize returns the set with every role normalized, blanks dropped and
// duplicates removed. Order of first appearance is kept.
func (s RoleEquivalenceSet) Normalize() RoleEquivalenceSet {
	seen := make(map[string]bool, len(s))
	out := make(RoleEquivalenceSet, 0, len(s))
	for _, r := range s {
		n := NormalizeRole(r)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Contains reports whether role is in the set, ignoring case and surrounding space.
func (s RoleEquivalenceSet) Contains(role string) bool {
	n := NormalizeRole(role)
	if n == "" {
		return false
	}
	for _, r := range s {
		if NormalizeRole(r) == n {
			return true
		}
	}
	return false
}
