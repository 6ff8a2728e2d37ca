package cli

import (
	"context"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTenantOptions(t *testing.T) {
	opts := tenantOptions([]*domain.Tenant{
		{ID: 1, Name: "Hillside Academy", ShortName: "hillside"},
		{ID: 2, Name: "Lakeside Primary"},
	})
	assert.Equal(t, []huh.Option[int64]{
		huh.NewOption("Hillside Academy (hillside)", int64(1)),
		huh.NewOption("Lakeside Primary", int64(2)),
	}, opts)
}

func TestUserOptions_SkipsSuspended(t *testing.T) {
	opts := userOptions([]*domain.User{
		{ID: 10, Username: "maya", FirstName: "Maya", LastName: "Chen"},
		{ID: 11, Username: "gone", Suspended: true},
	})
	assert.Len(t, opts, 1)
	assert.Equal(t, "Maya Chen · maya", opts[0].Key)
	assert.Equal(t, int64(10), opts[0].Value)
}

func TestRunSelect_NoChoices(t *testing.T) {
	_, err := runSelect(context.Background(), "School", nil)
	assert.ErrorIs(t, err, errNoChoices)
}

func TestKidsboardHuhTheme(t *testing.T) {
	assert.NotNil(t, kidsboardHuhTheme())
}
