package app

import "gopher-blog/internal/model"

// AdminGate guards the post mutations. Exactly one user id is the admin.
type AdminGate struct {
	adminID uint
}

func NewAdminGate(adminID uint) *AdminGate {
	return &AdminGate{adminID: adminID}
}

// RequireAdmin returns ErrForbidden for anonymous callers and for every
// user other than the admin, without telling the two apart.
func (g *AdminGate) RequireAdmin(user *model.User) error {
	if user == nil || user.ID == 0 || user.ID != g.adminID {
		return ErrForbidden
	}
	return nil
}

func (g *AdminGate) IsAdmin(user *model.User) bool {
	return g.RequireAdmin(user) == nil
}

func (g *AdminGate) AdminID() uint {
	return g.adminID
}
