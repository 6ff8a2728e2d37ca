package cli

import (
	"fmt"
	"strings"

	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/spf13/pflag"
)

// roleListValue collects role shortnames from repeated or comma-separated
// flag values.
type roleListValue struct {
	roles *domain.RoleEquivalenceSet
}

var _ pflag.Value = (*roleListValue)(nil)

func newRoleListValue(p *domain.RoleEquivalenceSet) *roleListValue {
	return &roleListValue{roles: p}
}

func (v *roleListValue) String() string {
	if v.roles == nil {
		return ""
	}
	return strings.Join(*v.roles, ",")
}

func (v *roleListValue) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if r := domain.NormalizeRole(part); r != "" {
			*v.roles = append(*v.roles, r)
		}
	}
	return nil
}

func (v *roleListValue) Type() string { return "roles" }

// scopeValue accepts activity, section or course.
type scopeValue struct {
	scope *domain.Scope
}

var _ pflag.Value = (*scopeValue)(nil)

func newScopeValue(p *domain.Scope) *scopeValue {
	return &scopeValue{scope: p}
}

func (v *scopeValue) String() string {
	if v.scope == nil {
		return ""
	}
	return string(*v.scope)
}

func (v *scopeValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidScopes[s] {
		return fmt.Errorf("must be one of activity, section, course")
	}
	*v.scope = domain.Scope(s)
	return nil
}

func (v *scopeValue) Type() string { return "scope" }

// tieBreakValue accepts the cohort tie-break policies.
type tieBreakValue struct {
	policy *domain.TieBreakPolicy
}

var _ pflag.Value = (*tieBreakValue)(nil)

func (v *tieBreakValue) String() string {
	if v.policy == nil {
		return ""
	}
	return string(*v.policy)
}

func (v *tieBreakValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidTieBreakPolicies[s] {
		return fmt.Errorf("must be one of first_listed, highest_grade, lowest_grade")
	}
	*v.policy = domain.TieBreakPolicy(s)
	return nil
}

func (v *tieBreakValue) Type() string { return "policy" }
