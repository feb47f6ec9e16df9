package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/caseworks/user-portal/internal/domain/model"
	apperrors "github.com/caseworks/user-portal/internal/errors"
	"github.com/caseworks/user-portal/internal/mocks"
	mockauth "github.com/caseworks/user-portal/internal/mocks/auth"
	"github.com/caseworks/user-portal/internal/testutil"
)

func newAuthService(t *testing.T) (*AuthService, *mocks.MockUserDirectory, *mockauth.MemorySessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	dir := mocks.NewMockUserDirectory(ctrl)
	store := mockauth.NewMemorySessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Directory:  dir,
		Sessions:   store,
		SessionTTL: 30 * time.Minute,
		Now:        testutil.FixedTimeFunc(testutil.TestTime()),
	})
	return svc, dir, store
}

func TestLoginCreatesSession(t *testing.T) {
	svc, dir, store := newAuthService(t)
	dir.EXPECT().Login(gomock.Any(), "a@b.com", "secret").Return(nil)

	sess, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "a@b.com", sess.Email)
	assert.Equal(t, testutil.TestTime().Add(30*time.Minute), sess.ExpiresAt)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", stored.Email)
}

func TestLoginRejectedLeavesNoSession(t *testing.T) {
	svc, dir, store := newAuthService(t)
	dir.EXPECT().Login(gomock.Any(), "a@b.com", "wrong").
		Return(apperrors.Upstream(401, "Invalid credentials."))

	_, err := svc.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, 0, store.Len())
}

func TestSignUpOpensBridgingSession(t *testing.T) {
	svc, dir, store := newAuthService(t)
	reg := model.Registration{
		FirstName: "Ada",
		LastName:  "Lovelace",
		MobileNo:  "+919876543210",
		Email:     "ada@example.com",
		Password:  "secret1",
	}
	dir.EXPECT().Register(gomock.Any(), reg).Return(nil)

	sess, err := svc.SignUp(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", sess.Email)
	assert.Equal(t, 1, store.Len())
}

func TestVerifyOTPTearsSessionDown(t *testing.T) {
	svc, dir, store := newAuthService(t)
	dir.EXPECT().Login(gomock.Any(), "a@b.com", "pw").Return(nil)
	sess, err := svc.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	dir.EXPECT().VerifyOTP(gomock.Any(), "a@b.com", "123456").Return(nil)
	require.NoError(t, svc.VerifyOTP(context.Background(), sess, "123456"))
	assert.Equal(t, 0, store.Len())
}

func TestVerifyOTPFailureKeepsSession(t *testing.T) {
	svc, dir, store := newAuthService(t)
	dir.EXPECT().Login(gomock.Any(), "a@b.com", "pw").Return(nil)
	sess, err := svc.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	dir.EXPECT().VerifyOTP(gomock.Any(), "a@b.com", "000000").
		Return(apperrors.Upstream(400, "Invalid OTP."))
	err = svc.VerifyOTP(context.Background(), sess, "000000")
	require.Error(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestCompletePasswordResetVerifiesBeforeResetting(t *testing.T) {
	svc, dir, store := newAuthService(t)
	dir.EXPECT().ForgotPassword(gomock.Any(), "a@b.com").Return(nil)
	sess, err := svc.BeginPasswordReset(context.Background(), "a@b.com")
	require.NoError(t, err)

	gomock.InOrder(
		dir.EXPECT().VerifyOTP(gomock.Any(), "a@b.com", "123456").Return(nil),
		dir.EXPECT().ResetPassword(gomock.Any(), "a@b.com", "next-secret").Return(nil),
	)
	require.NoError(t, svc.CompletePasswordReset(context.Background(), sess, "123456", "next-secret"))
	assert.Equal(t, 0, store.Len())
}

func TestCompletePasswordResetBadOTPSkipsReset(t *testing.T) {
	svc, dir, store := newAuthService(t)
	dir.EXPECT().ForgotPassword(gomock.Any(), "a@b.com").Return(nil)
	sess, err := svc.BeginPasswordReset(context.Background(), "a@b.com")
	require.NoError(t, err)

	// ResetPassword must not be called.
	dir.EXPECT().VerifyOTP(gomock.Any(), "a@b.com", "000000").
		Return(apperrors.Upstream(400, "Invalid OTP."))
	err = svc.CompletePasswordReset(context.Background(), sess, "000000", "next-secret")
	require.Error(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestLogoutClearsSessionEvenWhenUpstreamFails(t *testing.T) {
	svc, dir, store := newAuthService(t)
	dir.EXPECT().Login(gomock.Any(), "a@b.com", "pw").Return(nil)
	sess, err := svc.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	dir.EXPECT().Logout(gomock.Any(), "a@b.com").
		Return(apperrors.Unavailable(assert.AnError))
	require.NoError(t, svc.Logout(context.Background(), sess))
	assert.Equal(t, 0, store.Len())
}

func TestGetSession(t *testing.T) {
	svc, dir, _ := newAuthService(t)
	dir.EXPECT().Login(gomock.Any(), "a@b.com", "pw").Return(nil)
	sess, err := svc.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	got, err := svc.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Email, got.Email)

	_, err = svc.GetSession(context.Background(), "")
	assert.Error(t, err)

	_, err = svc.GetSession(context.Background(), "missing")
	assert.Error(t, err)
}
