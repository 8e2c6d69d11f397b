package domain

// Identity is the caller as seen by a single request. When it comes from a
// decoded session token its Role is a cached copy and must not be used for
// access decisions; a Directory read produces an authoritative Identity.
type Identity struct {
	SubjectID       string `json:"id"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// IdentityFromUser projects the directory record onto an Identity.
func IdentityFromUser(u *User) *Identity {
	if u == nil {
		return nil
	}
	return &Identity{
		SubjectID:       u.ID,
		Email:           u.Email,
		Role:            u.Role,
		Name:            u.Name,
		Phone:           u.Phone,
		ProfileImageURL: u.ProfileImageURL,
	}
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
