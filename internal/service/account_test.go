package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/oasisnourish/storefront/internal/domain/account"
	"github.com/oasisnourish/storefront/internal/mocks"
	fakebackend "github.com/oasisnourish/storefront/internal/mocks/backend"
	"github.com/oasisnourish/storefront/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAccountService(t *testing.T, fake *fakebackend.FakeBackend, store *SessionStore, n ports.Notifier) *AccountService {
	t.Helper()
	svc, err := NewAccountService(AccountServiceOptions{API: fake, Session: store, Notifier: n})
	require.NoError(t, err)
	return svc
}

func TestNewAccountService_RequiresDependencies(t *testing.T) {
	_, err := NewAccountService(AccountServiceOptions{})
	require.Error(t, err)

	_, err = NewAccountService(AccountServiceOptions{API: fakebackend.NewFakeBackend()})
	require.Error(t, err)
}

func TestAccountService_DeleteAccount_EndsSession(t *testing.T) {
	fake, store, notifier := newFakeStack(t)
	fake.Accounts[testUser.Email] = testUser
	fake.SetCurrent(&testUser)
	ctx := context.Background()
	store.Verify(ctx)
	require.Equal(t, account.PhaseAuthenticated, store.State().Phase())

	var phases []account.Phase
	store.Subscribe(func(s account.SessionState) { phases = append(phases, s.Phase()) })

	svc := newAccountService(t, fake, store, notifier)
	res := svc.DeleteAccount.Invoke(ctx, testUser.ID)

	require.True(t, res.OK)
	assert.Equal(t, "Account has been deleted successfully.", res.Message)
	assert.Equal(t, []account.Phase{account.PhaseVerifying, account.PhaseUnauthenticated}, phases)

	st := store.State()
	assert.Nil(t, st.Identity)
	assert.False(t, st.Authenticated)
	assert.Equal(t, []string{"FetchIdentity", "DeleteAccount", "FetchIdentity"}, fake.Calls())
}

func TestAccountService_DeleteAccount_NotFound(t *testing.T) {
	fake, store, notifier := newFakeStack(t)
	svc := newAccountService(t, fake, store, notifier)

	res := svc.DeleteAccount.Invoke(context.Background(), 42)

	assert.False(t, res.OK)
	assert.Equal(t, "User not found", res.Message)
	assert.Zero(t, fake.CallCount("FetchIdentity"))
}

func TestAccountService_UpdateProfile_RefreshesIdentity(t *testing.T) {
	fake, store, notifier := newFakeStack(t)
	fake.Accounts[testUser.Email] = testUser
	fake.SetCurrent(&testUser)
	ctx := context.Background()
	store.Verify(ctx)

	svc := newAccountService(t, fake, store, notifier)
	res := svc.UpdateProfile.Invoke(ctx, account.UpdateProfileInput{ID: testUser.ID, Name: "Jolene Q", Email: "jq@example.com"})

	require.True(t, res.OK, res.Message)
	assert.Equal(t, "Account has been updated successfully.", res.Message)
	assert.Equal(t, "Jolene Q", store.State().Identity.Name)
	assert.Equal(t, "jq@example.com", store.State().Identity.Email)
}

func TestAccountService_UpdateProfile_InvalidName(t *testing.T) {
	fake, store, notifier := newFakeStack(t)
	svc := newAccountService(t, fake, store, notifier)

	res := svc.UpdateProfile.Invoke(context.Background(), account.UpdateProfileInput{ID: 1, Name: "Jo", Email: "jo@example.com"})

	assert.False(t, res.OK)
	assert.Equal(t, "Name must be at least 3 characters long", res.Message)
	assert.Empty(t, fake.Calls())
}

func TestAccountService_ConfirmAccount_PromotesRole(t *testing.T) {
	fake, store, notifier := newFakeStack(t)
	unverified := account.Identity{ID: 3, Name: "Newbie", Email: "new@example.com", Role: account.RoleUnverifiedUser}
	fake.Accounts[unverified.Email] = unverified
	fake.SetCurrent(&unverified)
	ctx := context.Background()
	store.Verify(ctx)

	svc := newAccountService(t, fake, store, notifier)
	res := svc.ConfirmAccount.Invoke(ctx, account.ConfirmAccountInput{Token: "good"})

	require.True(t, res.OK)
	assert.Equal(t, "Your account has been verified.", res.Message)
	assert.Equal(t, account.RoleUser, store.State().EffectiveRole())
}

func TestAccountService_ConfirmAccount_ExpiredToken(t *testing.T) {
	fake, store, notifier := newFakeStack(t)
	svc := newAccountService(t, fake, store, notifier)

	res := svc.ConfirmAccount.Invoke(context.Background(), account.ConfirmAccountInput{Token: "expired"})

	assert.False(t, res.OK)
	assert.Equal(t, "Confirmation token has expired", res.Message)
	assert.Equal(t, ports.NoticeDestructive, notifier.Last().Variant)
}

func TestAccountService_LinksDoNotReverify(t *testing.T) {
	fake, store, notifier := newFakeStack(t)
	svc := newAccountService(t, fake, store, notifier)
	ctx := context.Background()

	res := svc.SendConfirmationLink.Invoke(ctx, 3)
	require.True(t, res.OK)
	assert.Equal(t, "The confirmation link has been sent to your email.", res.Message)

	res = svc.SendResetPasswordLink.Invoke(ctx, account.ForgotPasswordInput{Email: "jo@example.com"})
	require.True(t, res.OK)
	assert.Equal(t, "The password reset link has been sent to your email.", res.Message)

	res = svc.ResetPassword.Invoke(ctx, account.ResetPasswordInput{Token: "rst", Password: "Secret#123"})
	require.True(t, res.OK)
	assert.Equal(t, "Your password has been reset.", res.Message)

	assert.Zero(t, fake.CallCount("FetchIdentity"))
	assert.True(t, store.State().Loading, "store untouched: still in its initial state")
}

func TestAccountService_ResetPassword_BackendTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAccountAPI(ctrl)
	verifier := mocks.NewMockAuthAPI(ctrl)
	store, err := NewSessionStore(SessionStoreOptions{API: verifier})
	require.NoError(t, err)

	in := account.ResetPasswordInput{Token: "rst", Password: "Secret#123"}
	api.EXPECT().ResetPassword(gomock.Any(), in).
		Return("", fakebackend.Status(http.StatusBadRequest, "Reset token is invalid")).
		Times(1)

	svc, err := NewAccountService(AccountServiceOptions{API: api, Session: store})
	require.NoError(t, err)

	res := svc.ResetPassword.Invoke(context.Background(), in)
	assert.False(t, res.OK)
	assert.Equal(t, "Reset token is invalid", res.Message)
	assert.False(t, svc.Pending())
}
