package auth

import (
	"github.com/spec-kit/tutor-marketplace/internal/domain"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// Authorize checks a role requirement. Admin satisfies any requirement;
// otherwise the caller's role must match exactly.
func Authorize(have, want domain.UserRole) error {
	if have == domain.RoleAdmin || have == want {
		return nil
	}
	return apperrors.NewAuthorizationError("insufficient role")
}
