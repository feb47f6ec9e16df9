// Package mocks provides mock implementations for testing the user portal.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the ports interfaces. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	dir := mocks.NewMockUserDirectory(ctrl)
//	dir.EXPECT().Login(gomock.Any(), "ada@example.com", "pw").Return(nil)
package mocks

// Generate mock for UserDirectory interface from internal/ports package.
// This creates MockUserDirectory with methods for all UserDirectory interface methods:
// Register, Login, VerifyOTP, ResendOTP, Logout, ForgotPassword, ResetPassword,
// ChangePassword, Profile, UpdateProfile, Role, ListUsers, UpdateUser, DeleteUser
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_directory_mock.go github.com/caseworks/user-portal/internal/ports UserDirectory
