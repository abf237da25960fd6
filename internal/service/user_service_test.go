package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterUser(t *testing.T) {
	store := newFakeStore(teacher(1, model.RestrictionChecked))
	svc := NewUserService(store.users, zap.NewNop())

	created, err := svc.RegisterUser(context.Background(), 555, "anna", "Anna", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, created.Role)
	assert.Equal(t, model.RestrictionUnrestricted, created.RestrictionPolicy)

	again, err := svc.RegisterUser(context.Background(), 555, "anna", "Anna", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	existing, err := svc.RegisterUser(context.Background(), 1001, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, existing.Role)
}

func TestSetRestrictionPolicy(t *testing.T) {
	store := newFakeStore(teacher(1, model.RestrictionChecked), student(10), admin(99))
	svc := NewUserService(store.users, zap.NewNop())
	ctx := context.Background()

	adminUser, _ := store.users.GetByID(ctx, 99)
	studentUser, _ := store.users.GetByID(ctx, 10)

	assert.ErrorIs(t, svc.SetRestrictionPolicy(ctx, studentUser, 1, model.RestrictionUnrestricted), ErrForbidden)
	assert.ErrorIs(t, svc.SetRestrictionPolicy(ctx, adminUser, 10, model.RestrictionChecked), ErrNotATeacher)
	assert.ErrorIs(t, svc.SetRestrictionPolicy(ctx, adminUser, 42, model.RestrictionChecked), ErrUserNotFound)

	require.NoError(t, svc.SetRestrictionPolicy(ctx, adminUser, 1, model.RestrictionUnrestricted))
	policies, err := store.users.RestrictionPolicies(ctx, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, model.RestrictionUnrestricted, policies[1])
}
