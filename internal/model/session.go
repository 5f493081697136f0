package model

import "github.com/google/uuid"

// SessionContext carries the authenticated actor's identity and branch
// assignments. It is built once by the auth middleware and passed explicitly
// into every operation that makes an authorization decision.
type SessionContext struct {
	UserID            uuid.UUID   `json:"user_id"`
	Email             string      `json:"email"`
	FullName          string      `json:"full_name"`
	RoleCode          string      `json:"role_code"`
	Privileges        []string    `json:"privileges"`
	AssignedBranchIDs []uuid.UUID `json:"assigned_branch_ids"`
}

// IsAdmin reports whether the actor holds the admin role
func (s SessionContext) IsAdmin() bool {
	return s.RoleCode == RoleAdmin
}

// IsAssignedTo reports whether the actor is assigned to the given branch
func (s SessionContext) IsAssignedTo(branchID uuid.UUID) bool {
	for _, id := range s.AssignedBranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}

// HasPrivilege checks the flat privilege list carried in the token
func (s SessionContext) HasPrivilege(code string) bool {
	for _, p := range s.Privileges {
		if p == code {
			return true
		}
	}
	return false
}
