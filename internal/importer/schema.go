package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Snapshot is the top-level structure of an LMS snapshot file. Ids are the
// host LMS ids and are kept as-is in the local store.
type Snapshot struct {
	Tenants     []TenantImport     `json:"tenants" yaml:"tenants" validate:"dive"`
	Users       []UserImport       `json:"users" yaml:"users" validate:"dive"`
	Cohorts     []CohortImport     `json:"cohorts,omitempty" yaml:"cohorts,omitempty" validate:"dive"`
	Courses     []CourseImport     `json:"courses,omitempty" yaml:"courses,omitempty" validate:"dive"`
	Completions []CompletionImport `json:"completions,omitempty" yaml:"completions,omitempty" validate:"dive"`
}

type TenantImport struct {
	ID        int64  `json:"id" yaml:"id" validate:"gt=0"`
	Name      string `json:"name" yaml:"name" validate:"notblank"`
	ShortName string `json:"shortname,omitempty" yaml:"shortname,omitempty"`
}

type UserImport struct {
	ID        int64              `json:"id" yaml:"id" validate:"gt=0"`
	Username  string             `json:"username" yaml:"username" validate:"notblank"`
	FirstName string             `json:"firstname,omitempty" yaml:"firstname,omitempty"`
	LastName  string             `json:"lastname,omitempty" yaml:"lastname,omitempty"`
	Email     string             `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Suspended bool               `json:"suspended,omitempty" yaml:"suspended,omitempty"`
	Profile   map[string]string  `json:"profile,omitempty" yaml:"profile,omitempty"`
	Roles     []RoleImport       `json:"roles,omitempty" yaml:"roles,omitempty" validate:"dive"`
	Tenants   []MembershipImport `json:"tenants,omitempty" yaml:"tenants,omitempty" validate:"dive"`
}

// RoleImport assigns a role shortname, site-wide when CourseID is zero.
type RoleImport struct {
	Role     string `json:"role" yaml:"role" validate:"notblank"`
	CourseID int64  `json:"course_id,omitempty" yaml:"course_id,omitempty" validate:"gte=0"`
}

// MembershipImport links a user to a tenant. ManagerType follows IOMAD:
// 0 is an ordinary member, anything higher a manager.
type MembershipImport struct {
	TenantID    int64 `json:"id" yaml:"id" validate:"gt=0"`
	ManagerType int   `json:"manager_type,omitempty" yaml:"manager_type,omitempty" validate:"gte=0"`
}

type CohortImport struct {
	ID       int64                `json:"id" yaml:"id" validate:"gt=0"`
	Name     string               `json:"name" yaml:"name" validate:"notblank"`
	IDNumber string               `json:"idnumber,omitempty" yaml:"idnumber,omitempty"`
	Members  []CohortMemberImport `json:"members,omitempty" yaml:"members,omitempty" validate:"dive"`
}

type CohortMemberImport struct {
	UserID int64 `json:"user_id" yaml:"user_id" validate:"gt=0"`
	// Added is RFC3339 or YYYY-MM-DD. Empty means the import time.
	Added string `json:"added,omitempty" yaml:"added,omitempty"`
}

type CourseImport struct {
	ID         int64             `json:"id" yaml:"id" validate:"gt=0"`
	ShortName  string            `json:"shortname" yaml:"shortname" validate:"notblank"`
	FullName   string            `json:"fullname,omitempty" yaml:"fullname,omitempty"`
	TenantID   int64             `json:"tenant_id,omitempty" yaml:"tenant_id,omitempty" validate:"gte=0"`
	Sections   []SectionImport   `json:"sections,omitempty" yaml:"sections,omitempty" validate:"dive"`
	Enrolments []EnrolmentImport `json:"enrolments,omitempty" yaml:"enrolments,omitempty" validate:"dive"`
}

type SectionImport struct {
	ID         int64            `json:"id" yaml:"id" validate:"gt=0"`
	Number     int              `json:"number" yaml:"number" validate:"gte=0"`
	Name       string           `json:"name,omitempty" yaml:"name,omitempty"`
	Activities []ActivityImport `json:"activities,omitempty" yaml:"activities,omitempty" validate:"dive"`
}

type ActivityImport struct {
	ID      int64  `json:"id" yaml:"id" validate:"gt=0"`
	Name    string `json:"name" yaml:"name" validate:"notblank"`
	ModName string `json:"modname,omitempty" yaml:"modname,omitempty"`
	// Tracked defaults to true.
	Tracked *bool `json:"tracked,omitempty" yaml:"tracked,omitempty"`
}

type EnrolmentImport struct {
	UserID    int64 `json:"user_id" yaml:"user_id" validate:"gt=0"`
	Suspended bool  `json:"suspended,omitempty" yaml:"suspended,omitempty"`
}

type CompletionImport struct {
	UserID     int64    `json:"user_id" yaml:"user_id" validate:"gt=0"`
	ActivityID int64    `json:"activity_id" yaml:"activity_id" validate:"gt=0"`
	State      string   `json:"state" yaml:"state" validate:"oneof=not_started in_progress complete"`
	Grade      *float64 `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// LoadSnapshot reads a snapshot file. The format follows the extension:
// .json, or .yaml/.yml.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(data, filepath.Ext(path))
}

// ParseSnapshot decodes data in the format named by ext (".json", ".yaml", ".yml").
func ParseSnapshot(data []byte, ext string) (*Snapshot, error) {
	var snap Snapshot
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing snapshot json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing snapshot yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q (want .json, .yaml or .yml)", ext)
	}
	return &snap, nil
}
