package domain

import "fmt"

// Role tags the variant held by an Identity.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// Identity is the authenticated principal attached to a session. Exactly one
// variant is populated: anonymous (no ids), user (UserID, UserName) or admin
// (AdminID).
type Identity struct {
	Role     Role   `json:"role"`
	UserID   int64  `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	AdminID  int64  `json:"admin_id,omitempty"`
}

func Anonymous() Identity {
	return Identity{Role: RoleAnonymous}
}

func UserIdentity(id int64, name string) Identity {
	return Identity{Role: RoleUser, UserID: id, UserName: name}
}

func AdminIdentity(id int64) Identity {
	return Identity{Role: RoleAdmin, AdminID: id}
}

func (i Identity) IsAnonymous() bool { return i.Role == RoleAnonymous || i.Role == "" }
func (i Identity) IsUser() bool      { return i.Role == RoleUser }
func (i Identity) IsAdmin() bool     { return i.Role == RoleAdmin }

// Validate reports whether the identity holds fields of exactly one variant.
func (i Identity) Validate() error {
	switch i.Role {
	case RoleAnonymous, "":
		if i.UserID != 0 || i.UserName != "" || i.AdminID != 0 {
			return fmt.Errorf("anonymous identity carries principal fields")
		}
	case RoleUser:
		if i.UserID <= 0 {
			return fmt.Errorf("user identity requires a user id")
		}
		if i.AdminID != 0 {
			return fmt.Errorf("user identity carries an admin id")
		}
	case RoleAdmin:
		if i.AdminID <= 0 {
			return fmt.Errorf("admin identity requires an admin id")
		}
		if i.UserID != 0 || i.UserName != "" {
			return fmt.Errorf("admin identity carries user fields")
		}
	default:
		return fmt.Errorf("unknown identity role %q", i.Role)
	}
	return nil
}
