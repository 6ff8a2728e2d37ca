package formatter

import (
	"testing"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatTenantStats(t *testing.T) {
	approx := 4
	out := stripANSI(FormatTenantStats(&app.TenantStats{
		Tenant:      &domain.Tenant{ID: 1, Name: "Hillside Academy"},
		Teachers:    2,
		Students:    3,
		Managers:    1,
		Members:     6,
		Approximate: &approx,
	}))

	assert.Contains(t, out, "HILLSIDE ACADEMY")
	for _, label := range []string{"teachers", "students", "managers", "members"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "≈ 4 non-manager members (approximate")
}

func TestFormatTenantStats_UnknownTenant(t *testing.T) {
	out := stripANSI(FormatTenantStats(&app.TenantStats{}))
	assert.Contains(t, out, "tenant not found")
	assert.NotContains(t, out, "≈")
}

func TestFormatHeadcount(t *testing.T) {
	out := stripANSI(FormatHeadcount(&app.HeadcountResult{
		Tenant: &domain.Tenant{Name: "Hillside Academy"},
		Roles:  domain.RoleEquivalenceSet{"teacher", "editingteacher"},
		Count:  7,
	}))
	assert.Equal(t, "7  teacher, editingteacher  in Hillside Academy\n", out)

	out = stripANSI(FormatHeadcount(&app.HeadcountResult{}))
	assert.Equal(t, "0  (no roles)  in unknown tenant\n", out)
}

func TestFormatClassify(t *testing.T) {
	out := stripANSI(FormatClassify(&app.ClassifyResult{
		Band:    domain.GradeBand{Stage: domain.StageMiddle, Grade: 7},
		Variant: domain.VariantMiddle,
		Source:  app.SourceCohort,
		Matched: "Grade 7 Blue",
		Cohorts: []string{"Grade 7 Blue", "Choir"},
	}))
	assert.Contains(t, out, "● Middle 7")
	assert.Contains(t, out, `from cohort "Grade 7 Blue"`)
	assert.Contains(t, out, "cohorts: Grade 7 Blue, Choir")

	out = stripANSI(FormatClassify(&app.ClassifyResult{Source: app.SourceNone, Variant: domain.VariantDefault}))
	assert.Contains(t, out, "○ Unknown")
	assert.Contains(t, out, "no grade found")
	assert.NotContains(t, out, "cohorts:")
}

func TestFormatImportResult(t *testing.T) {
	out := stripANSI(FormatImportResult(&app.ImportResult{Tenants: 2, Users: 4, Cohorts: 2, Courses: 1, Activities: 6, Completions: 5}))
	assert.Contains(t, out, "✔ Imported 2 tenants, 4 users, 2 cohorts, 1 courses, 6 activities, 5 completions")
}
