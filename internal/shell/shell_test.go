package shell

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasisnourish/storefront/internal/domain/account"
	"github.com/oasisnourish/storefront/internal/domain/guard"
	fakebackend "github.com/oasisnourish/storefront/internal/mocks/backend"
	"github.com/oasisnourish/storefront/internal/service"
	"github.com/oasisnourish/storefront/internal/testutil"
)

const testPassword = "Secret#123"

var testUser = testutil.NewIdentity().
	WithID(7).
	WithName("Jolene").
	WithEmail("jo@example.com").
	Build()

type harness struct {
	shell   *Shell
	fake    *fakebackend.FakeBackend
	store   *service.SessionStore
	notices *fakebackend.RecordingNotifier
	out     *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := testutil.DiscardLogger()
	fake := fakebackend.NewFakeBackend()
	notices := &fakebackend.RecordingNotifier{}

	store, err := service.NewSessionStore(service.SessionStoreOptions{API: fake, Logger: logger})
	require.NoError(t, err)
	auth, err := service.NewAuthService(service.AuthServiceOptions{
		API: fake, Session: store, Notifier: notices, Logger: logger,
	})
	require.NoError(t, err)
	acct, err := service.NewAccountService(service.AccountServiceOptions{
		API: fake, Session: store, Notifier: notices, Logger: logger,
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	sh, err := New(Options{Session: store, Auth: auth, Account: acct, Out: out, Logger: logger})
	require.NoError(t, err)

	return &harness{shell: sh, fake: fake, store: store, notices: notices, out: out}
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	stop := h.shell.Start(context.Background())
	t.Cleanup(stop)
}

func (h *harness) exec(t *testing.T, line string) {
	t.Helper()
	quit, err := h.shell.Exec(context.Background(), line)
	require.NoError(t, err)
	require.False(t, quit)
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	h.fake.Accounts[testUser.Email] = testUser
	h.exec(t, "signin "+testUser.Email+" "+testPassword)
	require.True(t, h.store.State().Authenticated)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	h := newHarness(t)
	_, err = New(Options{Session: h.store, Out: h.out})
	require.Error(t, err)
}

func TestShell_StartRendersGuestHome(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	out := h.out.String()
	assert.Contains(t, out, "[/] Loading...", "initial check renders the fallback")
	assert.Contains(t, out, "Sign in (/auth/signin)")
	assert.Contains(t, out, "[/] Home")
	assert.Equal(t, "/", h.shell.Path())
	assert.Equal(t, 1, h.fake.CallCount("FetchIdentity"))
}

func TestShell_SignInRedirectsAwayFromGuestScreen(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.exec(t, "go /auth/signin")
	assert.Contains(t, h.out.String(), "[/auth/signin] Sign in")

	h.out.Reset()
	h.signIn(t)

	out := h.out.String()
	assert.Equal(t, guard.ProfilePath, h.shell.Path())
	assert.Contains(t, out, "-> redirected to /account/profile")
	assert.Contains(t, out, "My Account: Jolene")
	assert.Contains(t, out, "name:  Jolene")
	assert.Equal(t, "Successfully signed in.", h.notices.Last().Title)
}

func TestShell_ProtectedScreenRedirectsGuestToSignIn(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.exec(t, "go /account/profile")

	assert.Equal(t, guard.SignInPath, h.shell.Path())
	assert.Contains(t, h.out.String(), "-> redirected to /auth/signin")
}

func TestShell_NavigationUsesFreshSession(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.exec(t, "go /cart")
	h.exec(t, "go /")

	assert.Equal(t, 1, h.fake.CallCount("FetchIdentity"))
	assert.Contains(t, h.out.String(), "Your cart is empty.")
}

func TestShell_SignOut(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.signIn(t)

	h.exec(t, "signout")

	assert.False(t, h.store.State().Authenticated)
	assert.Equal(t, guard.SignInPath, h.shell.Path())
	assert.Equal(t, "Successfully signed out.", h.notices.Last().Title)
}

func TestShell_DeleteAccount(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.signIn(t)

	h.exec(t, "delete")

	assert.Equal(t, account.PhaseUnauthenticated, h.store.State().Phase())
	assert.Equal(t, "/", h.shell.Path())
	assert.Contains(t, h.fake.Calls(), "DeleteAccount")
}

func TestShell_UpdateProfile(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.signIn(t)

	h.out.Reset()
	h.exec(t, "profile Jolene Smith jo.smith@example.com")

	st := h.store.State()
	require.NotNil(t, st.Identity)
	assert.Equal(t, "Jolene Smith", st.Identity.Name)
	assert.Equal(t, "jo.smith@example.com", st.Identity.Email)
	assert.Equal(t, guard.ProfilePath, h.shell.Path())
	assert.Contains(t, h.out.String(), "[/account/profile]")
	assert.Contains(t, h.out.String(), "name:  Jolene Smith")
}

func TestShell_UpdateProfileRejectedStaysPut(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.signIn(t)

	h.exec(t, "profile Jo jo@example.com")

	assert.Equal(t, "/", h.shell.Path())
	assert.Equal(t, "Name must be at least 3 characters long", h.notices.Last().Title)
	assert.Equal(t, testUser.Name, h.store.State().Identity.Name)
}

func TestShell_UnverifiedAccountFlow(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.exec(t, "signup Ada Lovelace ada@example.com "+testPassword)
	require.Equal(t, account.RoleUnverifiedUser, h.store.State().Identity.Role)

	h.exec(t, "go /account/profile")
	assert.Equal(t, guard.ConfirmPath, h.shell.Path())
	assert.Contains(t, h.out.String(), "not yet been confirmed")

	h.exec(t, "confirm expired")
	assert.Equal(t, guard.ConfirmPath, h.shell.Path())
	assert.Equal(t, "Confirmation token has expired", h.notices.Last().Title)

	h.exec(t, "confirm abc123")
	assert.Equal(t, account.RoleUser, h.store.State().Identity.Role)
	assert.Equal(t, guard.ProfilePath, h.shell.Path())
}

func TestShell_ResetPasswordNavigatesToSignIn(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.exec(t, "reset tok123 "+testPassword)

	assert.Equal(t, guard.SignInPath, h.shell.Path())
	assert.Equal(t, "Your password has been reset.", h.notices.Last().Title)
}

func TestShell_ValidationFailureStaysPut(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.exec(t, "go /auth/signup")

	h.exec(t, "signup Ada ada@example.com weak")

	assert.Equal(t, "/auth/signup", h.shell.Path())
	assert.Equal(t, "Password must be at least 8 characters long", h.notices.Last().Title)
	assert.NotContains(t, h.fake.Calls(), "SignUp")
}

func TestShell_ExecErrors(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	ctx := context.Background()

	quit, err := h.shell.Exec(ctx, "   ")
	assert.NoError(t, err)
	assert.False(t, quit)

	_, err = h.shell.Exec(ctx, "teleport home")
	assert.ErrorContains(t, err, `unknown command "teleport"`)

	_, err = h.shell.Exec(ctx, "signin jo@example.com")
	assert.EqualError(t, err, "usage: signin <email> <password>")

	_, err = h.shell.Exec(ctx, "profile New Name new@example.com")
	assert.ErrorIs(t, err, errSignedOut)

	quit, err = h.shell.Exec(ctx, "QUIT")
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestShell_RejectsWhileMutationPending(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	h.fake.SignInFunc = func(context.Context, account.SignInInput) (string, error) {
		close(entered)
		<-release
		return "", nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := h.shell.Exec(context.Background(), "signin jo@example.com "+testPassword)
		done <- err
	}()
	<-entered

	_, err := h.shell.Exec(context.Background(), "signin jo@example.com "+testPassword)
	assert.ErrorIs(t, err, errBusy)

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, 1, h.fake.CallCount("SignIn"))
}

func TestShell_NotFound(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.exec(t, "go /nope")

	assert.Contains(t, h.out.String(), "[/nope] 404: page not found")
}

func TestShell_HelpAndRoutes(t *testing.T) {
	h := newHarness(t)

	h.exec(t, "help")
	h.exec(t, "routes")

	out := h.out.String()
	assert.Contains(t, out, "signin <email> <password>")
	assert.Contains(t, out, "reset <token> <password>")
	assert.Contains(t, out, "/account/profile/{id}/delete")
}

func TestShell_Run(t *testing.T) {
	h := newHarness(t)
	in := strings.NewReader("whoami\nbogus\nquit\nwhoami\n")

	require.NoError(t, h.shell.Run(context.Background(), in))

	out := h.out.String()
	assert.Equal(t, 1, strings.Count(out, "not signed in"))
	assert.Contains(t, out, `error: unknown command "bogus"`)
	assert.Contains(t, out, prompt)
}

func TestShell_RunStopsAtEOF(t *testing.T) {
	h := newHarness(t)
	h.fake.SetCurrent(&testUser)

	require.NoError(t, h.shell.Run(context.Background(), strings.NewReader("whoami")))

	assert.Contains(t, h.out.String(), "Jolene <jo@example.com> (id 7, USER)")
}

func TestShell_RunStopsOnCancel(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w := io.Pipe()
	defer w.Close()

	assert.NoError(t, h.shell.Run(ctx, r))
}
