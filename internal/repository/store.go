package repository

import "github.com/remuikids/kidsboard/internal/db"

// NewSQLiteStore wires every SQLite repository over one connection or transaction.
func NewSQLiteStore(conn db.DBTX) Store {
	return Store{
		Cohorts:     NewSQLiteCohortRepo(conn),
		Profiles:    NewSQLiteProfileRepo(conn),
		Completions: NewSQLiteCompletionRepo(conn),
		Tenants:     NewSQLiteTenantRepo(conn),
		Roles:       NewSQLiteRoleRepo(conn),
		Enrolments:  NewSQLiteEnrolmentRepo(conn),
		Courses:     NewSQLiteCourseRepo(conn),
		Users:       NewSQLiteUserRepo(conn),
	}
}
