package auth

import (
	"errors"
	"testing"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		have    domain.UserRole
		want    domain.UserRole
		allowed bool
	}{
		{"exact match", domain.RoleTutor, domain.RoleTutor, true},
		{"student as student", domain.RoleStudent, domain.RoleStudent, true},
		{"admin passes tutor requirement", domain.RoleAdmin, domain.RoleTutor, true},
		{"admin passes student requirement", domain.RoleAdmin, domain.RoleStudent, true},
		{"student cannot act as tutor", domain.RoleStudent, domain.RoleTutor, false},
		{"tutor cannot act as student", domain.RoleTutor, domain.RoleStudent, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.have, tc.want)
			if tc.allowed {
				if err != nil {
					t.Fatalf("Authorize(%s, %s) = %v, want nil", tc.have, tc.want, err)
				}
				return
			}
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 403 {
				t.Fatalf("Authorize(%s, %s) = %v, want 403", tc.have, tc.want, err)
			}
		})
	}
}
