// Package mocks provides mock implementations of the storefront client's ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the backend,
// notifier and cookie store interfaces.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockAuthAPI(ctrl)
//	api.EXPECT().FetchIdentity(gomock.Any()).Return(&identity, nil)
package mocks

// AuthAPI: FetchIdentity, RefreshToken
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/oasisnourish/storefront/internal/ports AuthAPI

// AccountAPI: SignUp, SignIn, SignOut, UpdateProfile, DeleteAccount, SendConfirmationLink,
// ConfirmAccount, SendResetPasswordLink, ResetPassword
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=account_api_mock.go github.com/oasisnourish/storefront/internal/ports AccountAPI

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=notifier_mock.go github.com/oasisnourish/storefront/internal/ports Notifier

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cookie_store_mock.go github.com/oasisnourish/storefront/internal/ports CookieStore
