package domain

// Tenant is an IOMAD company, i.e. one school.
type Tenant struct {
	ID        int64
	Name      string
	ShortName string
}

type TenantMembership struct {
	UserID   int64
	TenantID int64
	Kind     MembershipKind
}

func (m TenantMembership) IsManager() bool {
	return m.Kind == MembershipManager
}

type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	Suspended bool
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	return CoalesceStr(joinNonEmpty(u.FirstName, u.LastName), u.Username)
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// KindFromManagerType maps IOMAD's company_users.managertype: any positive
// value is a manager.
func KindFromManagerType(managerType int) MembershipKind {
	if managerType > 0 {
		return MembershipManager
	}
	return MembershipMember
}
