package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/caseworks/user-portal/internal/domain/grid"
	"github.com/caseworks/user-portal/internal/domain/model"
	apperrors "github.com/caseworks/user-portal/internal/errors"
	"github.com/caseworks/user-portal/internal/mocks"
)

const adminSession = "sess-admin"

func adminUsers() []model.User {
	return []model.User{
		{FirstName: "Jo", LastName: "Bloggs", Email: "jo@example.com", MobileNo: "+911111111111", Role: "user"},
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", MobileNo: "+912222222222", Role: "admin"},
	}
}

func newAdminService(t *testing.T) (*AdminService, *mocks.MockUserDirectory) {
	t.Helper()
	ctrl := gomock.NewController(t)
	dir := mocks.NewMockUserDirectory(ctrl)
	return NewAdminService(AdminServiceOptions{Directory: dir}), dir
}

func TestMountInstallsFreshWorkflow(t *testing.T) {
	svc, dir := newAdminService(t)
	dir.EXPECT().ListUsers(gomock.Any()).Return(adminUsers(), nil).Times(2)

	w, err := svc.Mount(context.Background(), adminSession)
	require.NoError(t, err)
	require.NoError(t, w.EnterEdit("0"))

	// Remounting discards the previous workflow and its edit state.
	w2, err := svc.Mount(context.Background(), adminSession)
	require.NoError(t, err)
	got, ok := svc.Grid(adminSession)
	require.True(t, ok)
	assert.Same(t, w2, got)
	row, _ := w2.Row("0")
	assert.False(t, row.Editing)
}

func TestMountListFailure(t *testing.T) {
	svc, dir := newAdminService(t)
	dir.EXPECT().ListUsers(gomock.Any()).Return(nil, apperrors.Upstream(500, "Failed to fetch users."))

	_, err := svc.Mount(context.Background(), adminSession)
	require.Error(t, err)
	_, ok := svc.Grid(adminSession)
	assert.False(t, ok)
}

func TestConfirmSaveSendsEditedRecord(t *testing.T) {
	svc, dir := newAdminService(t)
	dir.EXPECT().ListUsers(gomock.Any()).Return(adminUsers(), nil)

	w, err := svc.Mount(context.Background(), adminSession)
	require.NoError(t, err)
	require.NoError(t, w.EnterEdit("0"))
	require.NoError(t, w.ApplyEdits("0", grid.Edits{
		FirstName: "Joe",
		LastName:  "Bloggs",
		Email:     "jo@example.com",
		MobileNo:  "+911111111111",
		Role:      "user",
	}))
	_, err = w.RequestSave("0")
	require.NoError(t, err)

	dir.EXPECT().UpdateUser(gomock.Any(), "0", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, u model.User) error {
			assert.Equal(t, "Joe", u.FirstName)
			return nil
		})

	c, err := svc.ConfirmPending(context.Background(), adminSession)
	require.NoError(t, err)
	assert.Equal(t, grid.ConfirmSave, c.Kind)

	row, _ := w.Row("0")
	assert.False(t, row.Editing)
	assert.Equal(t, "Joe", row.User.FirstName)
}

func TestConfirmSaveFailureKeepsEditState(t *testing.T) {
	svc, dir := newAdminService(t)
	dir.EXPECT().ListUsers(gomock.Any()).Return(adminUsers(), nil)

	w, err := svc.Mount(context.Background(), adminSession)
	require.NoError(t, err)
	require.NoError(t, w.EnterEdit("0"))
	require.NoError(t, w.ApplyEdits("0", grid.Edits{FirstName: "Joe", LastName: "Bloggs", Email: "jo@example.com", MobileNo: "+911111111111", Role: "user"}))
	_, err = w.RequestSave("0")
	require.NoError(t, err)

	dir.EXPECT().UpdateUser(gomock.Any(), "0", gomock.Any()).
		Return(apperrors.Upstream(500, "Failed to update user."))

	_, err = svc.ConfirmPending(context.Background(), adminSession)
	require.Error(t, err)

	// The confirmation is consumed, the edits and snapshot are not.
	_, pending := w.Pending()
	assert.False(t, pending)
	row, _ := w.Row("0")
	assert.True(t, row.Editing)
	assert.Equal(t, "Joe", row.User.FirstName)
	require.NoError(t, w.CancelEdit("0"))
	row, _ = w.Row("0")
	assert.Equal(t, "Jo", row.User.FirstName)
}

func TestConfirmDeleteRemovesRow(t *testing.T) {
	svc, dir := newAdminService(t)
	dir.EXPECT().ListUsers(gomock.Any()).Return(adminUsers(), nil)

	w, err := svc.Mount(context.Background(), adminSession)
	require.NoError(t, err)
	_, err = w.RequestDelete("1")
	require.NoError(t, err)

	dir.EXPECT().DeleteUser(gomock.Any(), "1").Return(nil)

	c, err := svc.ConfirmPending(context.Background(), adminSession)
	require.NoError(t, err)
	assert.Equal(t, grid.ConfirmDelete, c.Kind)
	assert.Len(t, w.Rows(), 1)
}

func TestConfirmDeleteFailureLeavesListUntouched(t *testing.T) {
	svc, dir := newAdminService(t)
	dir.EXPECT().ListUsers(gomock.Any()).Return(adminUsers(), nil)

	w, err := svc.Mount(context.Background(), adminSession)
	require.NoError(t, err)
	_, err = w.RequestDelete("1")
	require.NoError(t, err)

	dir.EXPECT().DeleteUser(gomock.Any(), "1").
		Return(apperrors.Upstream(500, "Failed to delete user."))

	_, err = svc.ConfirmPending(context.Background(), adminSession)
	require.Error(t, err)
	assert.Len(t, w.Rows(), 2)
	_, ok := w.Row("1")
	assert.True(t, ok)
}

func TestConfirmPendingWithoutConfirmation(t *testing.T) {
	svc, dir := newAdminService(t)

	_, err := svc.ConfirmPending(context.Background(), adminSession)
	assert.True(t, apperrors.IsNotFound(err))

	dir.EXPECT().ListUsers(gomock.Any()).Return(adminUsers(), nil)
	_, err = svc.Mount(context.Background(), adminSession)
	require.NoError(t, err)

	_, err = svc.ConfirmPending(context.Background(), adminSession)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDismissAndUnmount(t *testing.T) {
	svc, dir := newAdminService(t)
	dir.EXPECT().ListUsers(gomock.Any()).Return(adminUsers(), nil)

	w, err := svc.Mount(context.Background(), adminSession)
	require.NoError(t, err)
	_, err = w.RequestDelete("0")
	require.NoError(t, err)

	svc.DismissPending(adminSession)
	_, pending := w.Pending()
	assert.False(t, pending)

	svc.Unmount(adminSession)
	_, ok := svc.Grid(adminSession)
	assert.False(t, ok)
}
