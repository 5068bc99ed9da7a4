package remote

import "github.com/rently/rently-client/internal/core/domain"

// The service encodes roles as an upper-case enumeration distinct from the
// display enumeration used internally.
const (
	wireLandlord = "LANDLORD"
	wireTenant   = "TENANT"
)

func roleToWire(r domain.Role) string {
	if r == domain.RoleLandlord {
		return wireLandlord
	}
	return wireTenant
}

func roleFromWire(s string) (domain.Role, bool) {
	switch s {
	case wireLandlord:
		return domain.RoleLandlord, true
	case wireTenant:
		return domain.RoleTenant, true
	default:
		return "", false
	}
}
