package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The local store mirrors the subset of the Moodle/IOMAD schema the dashboards
// read. Ids are the host LMS ids so snapshots can be re-imported in place.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
		id        INTEGER PRIMARY KEY,
		name      TEXT NOT NULL,
		shortname TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id        INTEGER PRIMARY KEY,
		username  TEXT NOT NULL UNIQUE,
		firstname TEXT NOT NULL DEFAULT '',
		lastname  TEXT NOT NULL DEFAULT '',
		email     TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS user_profile_fields (
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		field   TEXT NOT NULL,
		value   TEXT NOT NULL,
		PRIMARY KEY (user_id, field)
	)`,

	`CREATE TABLE IF NOT EXISTS cohorts (
		id       INTEGER PRIMARY KEY,
		name     TEXT NOT NULL,
		idnumber TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS cohort_members (
		cohort_id  INTEGER NOT NULL REFERENCES cohorts(id) ON DELETE CASCADE,
		user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		time_added TEXT NOT NULL,
		PRIMARY KEY (cohort_id, user_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cohort_members_user ON cohort_members(user_id)`,

	`CREATE TABLE IF NOT EXISTS tenant_users (
		tenant_id    INTEGER NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		manager_type INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (tenant_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS role_assignments (
		user_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role      TEXT NOT NULL,
		course_id INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, role, course_id)
	)`,

	`CREATE TABLE IF NOT EXISTS courses (
		id        INTEGER PRIMARY KEY,
		shortname TEXT NOT NULL,
		fullname  TEXT NOT NULL DEFAULT '',
		tenant_id INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS course_sections (
		id          INTEGER PRIMARY KEY,
		course_id   INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		section_num INTEGER NOT NULL DEFAULT 0,
		name        TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_course_sections_course ON course_sections(course_id)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id                 INTEGER PRIMARY KEY,
		course_id          INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		section_id         INTEGER NOT NULL REFERENCES course_sections(id) ON DELETE CASCADE,
		name               TEXT NOT NULL DEFAULT '',
		modname            TEXT NOT NULL DEFAULT '',
		completion_tracked INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_course ON activities(course_id)`,

	`CREATE TABLE IF NOT EXISTS enrolments (
		user_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		status    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, course_id)
	)`,

	`CREATE TABLE IF NOT EXISTS activity_completions (
		user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		activity_id INTEGER NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		state       TEXT NOT NULL DEFAULT 'not_started'
		            CHECK(state IN ('not_started','in_progress','complete')),
		grade       REAL,
		PRIMARY KEY (user_id, activity_id)
	)`,

	// Suspended accounts are kept but excluded from active head-counts.
	`ALTER TABLE users ADD COLUMN suspended INTEGER NOT NULL DEFAULT 0`,
}
