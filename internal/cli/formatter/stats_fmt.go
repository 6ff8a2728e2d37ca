package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/remuikids/kidsboard/internal/app"
)

// FormatTenantStats renders the school manager cards.
func FormatTenantStats(s *app.TenantStats) string {
	var b strings.Builder
	if s.Tenant == nil {
		b.WriteString(Warning("tenant not found; all counts are zero"))
		b.WriteString("\n")
	} else {
		b.WriteString(Header(s.Tenant.Name))
		b.WriteString("\n")
	}

	cards := []string{
		StatCard("teachers", strconv.Itoa(s.Teachers)),
		StatCard("students", strconv.Itoa(s.Students)),
		StatCard("managers", strconv.Itoa(s.Managers)),
		StatCard("members", strconv.Itoa(s.Members)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")

	if s.Approximate != nil {
		fmt.Fprintf(&b, "%s %d %s\n", Dim("≈"), *s.Approximate, Dim("non-manager members (approximate, ignores roles)"))
	}
	return b.String()
}

// FormatHeadcount renders a single role head-count line.
func FormatHeadcount(r *app.HeadcountResult) string {
	tenant := "unknown tenant"
	if r.Tenant != nil {
		tenant = r.Tenant.Name
	}
	roles := Dim("(no roles)")
	if len(r.Roles) > 0 {
		roles = strings.Join(r.Roles, ", ")
	}
	return fmt.Sprintf("%s  %s  %s\n", Bold(strconv.Itoa(r.Count)), roles, Dim("in "+tenant))
}
