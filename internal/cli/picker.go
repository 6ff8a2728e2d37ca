package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/remuikids/kidsboard/internal/cli/formatter"
	"github.com/remuikids/kidsboard/internal/domain"
)

var errNoChoices = errors.New("nothing to pick from")

func kidsboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func tenantOptions(tenants []*domain.Tenant) []huh.Option[int64] {
	opts := make([]huh.Option[int64], 0, len(tenants))
	for _, t := range tenants {
		label := t.Name
		if t.ShortName != "" {
			label = fmt.Sprintf("%s (%s)", t.Name, t.ShortName)
		}
		opts = append(opts, huh.NewOption(label, t.ID))
	}
	return opts
}

func userOptions(users []*domain.User) []huh.Option[int64] {
	opts := make([]huh.Option[int64], 0, len(users))
	for _, u := range users {
		if u.Suspended {
			continue
		}
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s · %s", u.FullName(), u.Username), u.ID))
	}
	return opts
}

// pickUser asks for a school and then a student in it.
func pickUser(ctx context.Context, a *App) (int64, error) {
	tenants, err := a.Tenants.List(ctx)
	if err != nil {
		return 0, err
	}
	tenantID, err := runSelect(ctx, "School", tenantOptions(tenants))
	if err != nil {
		return 0, fmt.Errorf("picking school: %w", err)
	}

	users, err := a.Users.ListByTenant(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	userID, err := runSelect(ctx, "Student", userOptions(users))
	if err != nil {
		return 0, fmt.Errorf("picking student: %w", err)
	}
	return userID, nil
}

func runSelect(ctx context.Context, title string, opts []huh.Option[int64]) (int64, error) {
	if len(opts) == 0 {
		return 0, errNoChoices
	}
	var picked int64
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().
			Title(title).
			Options(opts...).
			Value(&picked),
	)).WithTheme(kidsboardHuhTheme())
	if err := form.RunWithContext(ctx); err != nil {
		return 0, err
	}
	return picked, nil
}
