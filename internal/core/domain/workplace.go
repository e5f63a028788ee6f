package domain

import "time"

// Workplace is the tenant boundary: every bill, product, account and journal entry belongs to one.
type Workplace struct {
	WorkplaceID         string  `json:"workplaceID"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"`
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// UserWorkplaceRole defines the possible roles a user can have within a workplace.
type UserWorkplaceRole string

const (
	RoleAdmin    UserWorkplaceRole = "ADMIN"
	RoleMember   UserWorkplaceRole = "MEMBER"
	RoleReadOnly UserWorkplaceRole = "READONLY"
	RoleRemoved  UserWorkplaceRole = "REMOVED"
)

var roleRank = map[UserWorkplaceRole]int{
	RoleRemoved:  0,
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
}

// Satisfies reports whether a member holding r may perform an action that needs required.
func (r UserWorkplaceRole) Satisfies(required UserWorkplaceRole) bool {
	have, ok := roleRank[r]
	if !ok || r == RoleRemoved {
		return false
	}
	return have >= roleRank[required]
}

// UserWorkplace represents the membership of a User in a Workplace.
type UserWorkplace struct {
	UserID      string            `json:"userID"`
	WorkplaceID string            `json:"workplaceID"`
	Role        UserWorkplaceRole `json:"role"`
	JoinedAt    time.Time         `json:"joinedAt"`
}
