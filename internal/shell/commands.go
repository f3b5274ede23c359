package shell

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/oasisnourish/storefront/internal/domain/account"
	"github.com/oasisnourish/storefront/internal/domain/guard"
	"github.com/oasisnourish/storefront/internal/service"
)

var (
	errQuit      = errors.New("quit")
	errSignedOut = errors.New("you are not signed in")
	errBusy      = errors.New("another request is still running")
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	usage       string
	description string
	minArgs     int
	run         commandFn
}

type commandContext struct {
	ctx   context.Context
	shell *Shell
}

func commands() map[string]command {
	list := []command{
		{name: "help", usage: "help", description: "List commands", run: runHelp},
		{name: "quit", usage: "quit", description: "Leave the shell", run: runQuit},
		{name: "exit", usage: "exit", description: "Leave the shell", run: runQuit},
		{name: "whoami", usage: "whoami", description: "Show the signed-in account", run: runWhoami},
		{name: "verify", usage: "verify", description: "Re-check the session with the backend", run: runVerify},
		{name: "go", usage: "go <path>", description: "Open a screen, e.g. go /account/profile", minArgs: 1, run: runGo},
		{name: "routes", usage: "routes", description: "List screens", run: runRoutes},
		{name: "signin", usage: "signin <email> <password>", description: "Sign in", minArgs: 2, run: runSignIn},
		{name: "signup", usage: "signup <name> <email> <password>", description: "Create an account", minArgs: 3, run: runSignUp},
		{name: "signout", usage: "signout", description: "Sign out", run: runSignOut},
		{name: "profile", usage: "profile <name> <email>", description: "Update name and email", minArgs: 2, run: runProfile},
		{name: "delete", usage: "delete", description: "Delete the signed-in account", run: runDelete},
		{name: "send-confirmation", usage: "send-confirmation", description: "Email a new confirmation link", run: runSendConfirmation},
		{name: "confirm", usage: "confirm <token>", description: "Confirm the account with an emailed token", minArgs: 1, run: runConfirm},
		{name: "forgot", usage: "forgot <email>", description: "Email a password reset link", minArgs: 1, run: runForgot},
		{name: "reset", usage: "reset <token> <password>", description: "Set a new password with an emailed token", minArgs: 2, run: runReset},
	}

	out := make(map[string]command, len(list))
	for _, c := range list {
		out[c.name] = c
	}
	return out
}

func runHelp(c *commandContext, _ []string) error {
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	c.shell.writef("Commands:\n")
	for _, name := range names {
		cmd := cmds[name]
		c.shell.writef("  %-34s %s\n", cmd.usage, cmd.description)
	}
	return nil
}

func runQuit(*commandContext, []string) error { return errQuit }

func runWhoami(c *commandContext, _ []string) error {
	c.shell.writef("%s\n", describeSession(c.shell.session.State()))
	return nil
}

func runVerify(c *commandContext, _ []string) error {
	state := c.shell.session.Verify(c.ctx)
	c.shell.writef("%s\n", describeSession(state))
	return nil
}

func runGo(c *commandContext, args []string) error {
	c.shell.Navigate(c.ctx, args[0])
	return nil
}

func runRoutes(c *commandContext, _ []string) error {
	for _, r := range c.shell.routes.Routes() {
		c.shell.writef("  %-34s %s\n", r.Pattern, r.Title)
	}
	return nil
}

func runSignIn(c *commandContext, args []string) error {
	res := c.shell.auth.SignIn.Invoke(c.ctx, account.SignInInput{Email: args[0], Password: args[1]})
	return c.settle(res, "")
}

func runSignUp(c *commandContext, args []string) error {
	n := len(args)
	res := c.shell.auth.SignUp.Invoke(c.ctx, account.SignUpInput{
		Name:     strings.Join(args[:n-2], " "),
		Email:    args[n-2],
		Password: args[n-1],
	})
	return c.settle(res, "")
}

func runSignOut(c *commandContext, _ []string) error {
	res := c.shell.auth.SignOut.Invoke(c.ctx, struct{}{})
	return c.settle(res, guard.SignInPath)
}

func runProfile(c *commandContext, args []string) error {
	id, err := c.currentID()
	if err != nil {
		return err
	}
	n := len(args)
	res := c.shell.account.UpdateProfile.Invoke(c.ctx, account.UpdateProfileInput{
		ID:    id,
		Name:  strings.Join(args[:n-1], " "),
		Email: args[n-1],
	})
	return c.settle(res, guard.ProfilePath)
}

func runDelete(c *commandContext, _ []string) error {
	id, err := c.currentID()
	if err != nil {
		return err
	}
	res := c.shell.account.DeleteAccount.Invoke(c.ctx, id)
	return c.settle(res, "/")
}

func runSendConfirmation(c *commandContext, _ []string) error {
	id, err := c.currentID()
	if err != nil {
		return err
	}
	return c.settle(c.shell.account.SendConfirmationLink.Invoke(c.ctx, id), "")
}

func runConfirm(c *commandContext, args []string) error {
	res := c.shell.account.ConfirmAccount.Invoke(c.ctx, account.ConfirmAccountInput{Token: args[0]})
	if err := c.settle(res, ""); err != nil {
		return err
	}
	// Land on the pending-confirmation screen either way; the guard moves a
	// confirmed account on to its profile.
	c.shell.Navigate(c.ctx, guard.ConfirmPath)
	return nil
}

func runForgot(c *commandContext, args []string) error {
	res := c.shell.account.SendResetPasswordLink.Invoke(c.ctx, account.ForgotPasswordInput{Email: args[0]})
	return c.settle(res, "")
}

func runReset(c *commandContext, args []string) error {
	res := c.shell.account.ResetPassword.Invoke(c.ctx, account.ResetPasswordInput{Token: args[0], Password: args[1]})
	return c.settle(res, guard.SignInPath)
}

// settle reports a rejected invocation and, on success, optionally moves to next.
// Failures were already shown as notices by the mutation.
func (c *commandContext) settle(res service.MutationResult, next string) error {
	if errors.Is(res.Err, service.ErrMutationPending) {
		return errBusy
	}
	if res.OK && next != "" {
		c.shell.Navigate(c.ctx, next)
	}
	return nil
}

func (c *commandContext) currentID() (int64, error) {
	state := c.shell.session.State()
	if !state.Authenticated || state.Identity == nil {
		return 0, errSignedOut
	}
	return state.Identity.ID, nil
}
