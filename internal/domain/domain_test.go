package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"public-vision-be/internal/domain"
)

func TestParseRole(t *testing.T) {
	t.Run("Empty Defaults To Citizen", func(t *testing.T) {
		role, err := domain.ParseRole("")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleCitizen, role)
	})

	t.Run("Case Insensitive", func(t *testing.T) {
		role, err := domain.ParseRole("admin")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, role)
	})

	t.Run("Unknown Role Rejected", func(t *testing.T) {
		_, err := domain.ParseRole("superuser")
		assert.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		status, err := domain.ParseStatus("in_progress")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, status)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := domain.ParseStatus("CLOSED")
		assert.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})
}

func TestHasRole(t *testing.T) {
	admin := &domain.User{Role: domain.RoleAdmin}
	staff := &domain.User{Role: domain.RoleStaff}
	citizen := &domain.User{Role: domain.RoleCitizen}

	assert.True(t, admin.HasRole(domain.RoleAdmin))
	assert.True(t, admin.HasRole(domain.RoleStaff))
	assert.True(t, admin.HasRole(domain.RoleCitizen))

	assert.False(t, staff.HasRole(domain.RoleAdmin))
	assert.True(t, staff.HasRole(domain.RoleStaff))
	assert.True(t, staff.HasRole(domain.RoleCitizen))

	assert.False(t, citizen.HasRole(domain.RoleAdmin))
	assert.False(t, citizen.HasRole(domain.RoleStaff))
	assert.True(t, citizen.HasRole(domain.RoleCitizen))
}

func TestKindOf(t *testing.T) {
	t.Run("Domain Error", func(t *testing.T) {
		err := domain.ForbiddenError("nope")
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})

	t.Run("Wrapped Domain Error", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", domain.NotFoundError("missing"))
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("Plain Error Is Internal", func(t *testing.T) {
		assert.Equal(t, domain.KindInternal, domain.KindOf(errors.New("boom")))
	})
}

func TestSortParams(t *testing.T) {
	t.Run("Unknown Column Falls Back", func(t *testing.T) {
		s := domain.SortParams{SortBy: "password_hash; DROP TABLE users", Direction: "asc"}
		s.Validate()
		assert.Equal(t, "created_at ASC", s.OrderClause())
	})

	t.Run("Valid Column Kept", func(t *testing.T) {
		s := domain.SortParams{SortBy: "due_date", Direction: "desc"}
		s.Validate()
		assert.Equal(t, "due_date DESC", s.OrderClause())
	})
}
