package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const notBlankTag = "notblank"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their file names, not Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(s) != ""
	})
	return v
}

// ValidateSnapshot checks field rules and cross references before conversion.
// It returns every problem found.
func ValidateSnapshot(snap *Snapshot) []error {
	var errs []error
	errs = append(errs, validateFields(snap)...)
	errs = append(errs, validateReferences(snap)...)
	return errs
}

func validateFields(snap *Snapshot) []error {
	err := validate.Struct(snap)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []error{fmt.Errorf("validating snapshot: %w", err)}
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s: %s", fieldPath(fe), describe(fe)))
	}
	return errs
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return "must not be blank"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("invalid value %q (want one of %s)", fe.Value(), fe.Param())
	case "email":
		return fmt.Sprintf("invalid email %q", fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func validateReferences(snap *Snapshot) []error {
	var errs []error

	tenantIDs := make(map[int64]bool)
	for i, t := range snap.Tenants {
		if tenantIDs[t.ID] {
			errs = append(errs, fmt.Errorf("tenants[%d]: duplicate id %d", i, t.ID))
		}
		tenantIDs[t.ID] = true
	}

	userIDs := make(map[int64]bool)
	usernames := make(map[string]bool)
	for i, u := range snap.Users {
		if userIDs[u.ID] {
			errs = append(errs, fmt.Errorf("users[%d]: duplicate id %d", i, u.ID))
		}
		userIDs[u.ID] = true
		name := strings.ToLower(strings.TrimSpace(u.Username))
		if name != "" && usernames[name] {
			errs = append(errs, fmt.Errorf("users[%d]: duplicate username %q", i, u.Username))
		}
		usernames[name] = true
		for j, m := range u.Tenants {
			if m.TenantID > 0 && !tenantIDs[m.TenantID] {
				errs = append(errs, fmt.Errorf("users[%d].tenants[%d]: unknown tenant %d", i, j, m.TenantID))
			}
		}
		for field := range u.Profile {
			if strings.TrimSpace(field) == "" {
				errs = append(errs, fmt.Errorf("users[%d].profile: blank field name", i))
			}
		}
	}

	cohortIDs := make(map[int64]bool)
	for i, c := range snap.Cohorts {
		if cohortIDs[c.ID] {
			errs = append(errs, fmt.Errorf("cohorts[%d]: duplicate id %d", i, c.ID))
		}
		cohortIDs[c.ID] = true
		for j, m := range c.Members {
			if m.UserID > 0 && !userIDs[m.UserID] {
				errs = append(errs, fmt.Errorf("cohorts[%d].members[%d]: unknown user %d", i, j, m.UserID))
			}
			if m.Added != "" {
				if _, err := parseAdded(m.Added); err != nil {
					errs = append(errs, fmt.Errorf("cohorts[%d].members[%d].added: %w", i, j, err))
				}
			}
		}
	}

	courseIDs := make(map[int64]bool)
	sectionIDs := make(map[int64]bool)
	activityIDs := make(map[int64]bool)
	for i, c := range snap.Courses {
		if courseIDs[c.ID] {
			errs = append(errs, fmt.Errorf("courses[%d]: duplicate id %d", i, c.ID))
		}
		courseIDs[c.ID] = true
		if c.TenantID > 0 && !tenantIDs[c.TenantID] {
			errs = append(errs, fmt.Errorf("courses[%d]: unknown tenant %d", i, c.TenantID))
		}
		for j, s := range c.Sections {
			if sectionIDs[s.ID] {
				errs = append(errs, fmt.Errorf("courses[%d].sections[%d]: duplicate id %d", i, j, s.ID))
			}
			sectionIDs[s.ID] = true
			for k, a := range s.Activities {
				if activityIDs[a.ID] {
					errs = append(errs, fmt.Errorf("courses[%d].sections[%d].activities[%d]: duplicate id %d", i, j, k, a.ID))
				}
				activityIDs[a.ID] = true
			}
		}
		for j, e := range c.Enrolments {
			if e.UserID > 0 && !userIDs[e.UserID] {
				errs = append(errs, fmt.Errorf("courses[%d].enrolments[%d]: unknown user %d", i, j, e.UserID))
			}
		}
	}

	for i, u := range snap.Users {
		for j, r := range u.Roles {
			if r.CourseID > 0 && !courseIDs[r.CourseID] {
				errs = append(errs, fmt.Errorf("users[%d].roles[%d]: unknown course %d", i, j, r.CourseID))
			}
		}
	}

	seen := make(map[[2]int64]bool)
	for i, c := range snap.Completions {
		if c.UserID > 0 && !userIDs[c.UserID] {
			errs = append(errs, fmt.Errorf("completions[%d]: unknown user %d", i, c.UserID))
		}
		if c.ActivityID > 0 && !activityIDs[c.ActivityID] {
			errs = append(errs, fmt.Errorf("completions[%d]: unknown activity %d", i, c.ActivityID))
		}
		key := [2]int64{c.UserID, c.ActivityID}
		if seen[key] {
			errs = append(errs, fmt.Errorf("completions[%d]: duplicate completion for user %d activity %d", i, c.UserID, c.ActivityID))
		}
		seen[key] = true
	}

	return errs
}

// parseAdded accepts RFC3339 timestamps and plain dates.
func parseAdded(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected RFC3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}
