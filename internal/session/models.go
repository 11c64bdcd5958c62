package session

import (
	"time"

	"backoffice/internal/backend/models"
)

// Key names one of the values persisted for a session. They mirror what a
// browser keeps in local storage and are always cleared together.
type Key string

const (
	KeyToken       Key = "token"
	KeyUser        Key = "user"
	KeyTokenExpiry Key = "tokenExpiry"
)

// Keys returns every persisted key.
func Keys() []Key {
	return []Key{KeyToken, KeyUser, KeyTokenExpiry}
}

// Roles issued by the backend.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleBankAdmin  = "BankAdmin"
	RoleBankUser   = "BankUser"
	RoleClient     = "Client"
	RoleClientUser = "ClientUser"
)

// Snapshot is a read-only copy of a session taken once per request. Changing it
// never affects the holder.
type Snapshot struct {
	SessionID   string
	Token       string
	TokenExpiry time.Time
	User        models.User
}

func (s *Snapshot) HasRole(roles ...string) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.User.Role == r {
			return true
		}
	}
	return false
}

func (s *Snapshot) HasBankAccess() bool {
	if s == nil {
		return false
	}
	return s.User.BankName != "" || (s.User.BankID != nil && *s.User.BankID != 0) ||
		s.User.Role == RoleBankAdmin || s.User.Role == RoleBankUser
}

func (s *Snapshot) HasClientAccess() bool {
	if s == nil {
		return false
	}
	_, hasID := s.ClientID()
	return s.User.ClientName != "" || hasID || s.User.Role == RoleClient || s.User.Role == RoleClientUser
}

// ClientID returns the client the user belongs to, if any. The backend never
// issues id 0, so it counts as absent.
func (s *Snapshot) ClientID() (int64, bool) {
	if s == nil || s.User.ClientID == nil || *s.User.ClientID == 0 {
		return 0, false
	}
	return *s.User.ClientID, true
}

func (s *Snapshot) Expired(now time.Time) bool {
	return s == nil || s.Token == "" || !now.Before(s.TokenExpiry)
}

func cloneUser(u models.User) models.User {
	out := u
	if u.BankID != nil {
		v := *u.BankID
		out.BankID = &v
	}
	if u.ClientID != nil {
		v := *u.ClientID
		out.ClientID = &v
	}
	return out
}
