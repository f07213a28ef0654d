package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/utils"
)

func repInput(email string) *MarketingRepInput {
	return &MarketingRepInput{
		Name:        ptr("Rina Akter"),
		PhoneNumber: ptr("01711000000"),
		Email:       ptr(email),
		District:    ptr("Dhaka"),
		SubDistrict: ptr("Savar"),
	}
}

func TestCreateMarketingRep(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	rep, err := e.reps.CreateMarketingRep(ctx, repInput("rina@xylem.io"))
	require.NoError(t, err)
	assert.NotEmpty(t, rep.EmployeeID)

	user, err := e.store.Users().GetByID(ctx, rep.UserID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "rina@xylem.io", user.Username)
	assert.True(t, user.IsMarketingRepresentative)
	assert.False(t, user.IsAdmin)

	sent := e.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "rep_credentials", sent[0].Template)
	assert.Equal(t, []string{"rina@xylem.io"}, sent[0].Recipients)
	password := sent[0].Payload["Password"]
	assert.Len(t, password, 8)
	assert.True(t, utils.CheckPasswordHash(password, user.Password))
}

func TestCreateMarketingRep_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.reps.CreateMarketingRep(ctx, &MarketingRepInput{Name: ptr("x")})
	require.Error(t, err)
	assert.Len(t, apperror.GetAppError(err).Errors, 4)

	_, err = e.reps.CreateMarketingRep(ctx, repInput("not-an-email"))
	assert.True(t, apperror.IsInvalidArgument(err))

	require.NoError(t, e.store.Users().Create(ctx, &entity.User{Username: "admin", Email: "taken@xylem.io"}))
	_, err = e.reps.CreateMarketingRep(ctx, repInput("taken@xylem.io"))
	require.Error(t, err)
	assert.Equal(t, "email", apperror.GetAppError(err).Errors[0].Field)
	assert.Empty(t, e.notifier.Sent())
}

func TestUpdateMarketingRep_SyncsLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rep, err := e.reps.CreateMarketingRep(ctx, repInput("rina@xylem.io"))
	require.NoError(t, err)
	employeeID := rep.EmployeeID

	updated, err := e.reps.UpdateMarketingRep(ctx, rep.ID, &MarketingRepInput{Email: ptr("rina.a@xylem.io")})
	require.NoError(t, err)
	assert.Equal(t, employeeID, updated.EmployeeID)
	assert.Equal(t, "Rina Akter", updated.Name)

	user, _ := e.store.Users().GetByID(ctx, rep.UserID)
	assert.Equal(t, "rina.a@xylem.io", user.Email)
	assert.Equal(t, "rina.a@xylem.io", user.Username)
}

func TestDeleteMarketingRep_LeavesAssignmentsDangling(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rep, err := e.reps.CreateMarketingRep(ctx, repInput("rina@xylem.io"))
	require.NoError(t, err)
	d := e.distributor(t, "d", rep)

	require.NoError(t, e.reps.DeleteMarketingRep(ctx, rep.ID))

	user, _ := e.store.Users().GetByID(ctx, rep.UserID)
	assert.Nil(t, user)
	got, _ := e.store.Distributors().GetByID(ctx, d.ID)
	require.NotNil(t, got.MarketingRepresentativeID)
	assert.Equal(t, rep.ID, *got.MarketingRepresentativeID)
	assert.Nil(t, got.MarketingRepresentative)

	assert.True(t, apperror.IsNotFound(e.reps.DeleteMarketingRep(ctx, rep.ID)))
}

func TestForUser(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rep := e.rep(t, "rina")

	got, err := e.reps.ForUser(ctx, rep.UserID)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, got.ID)

	_, err = e.reps.ForUser(ctx, uuid.New())
	assert.True(t, apperror.IsPermissionDenied(err))
}
