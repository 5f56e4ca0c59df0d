package cli

import (
	"context"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/api"
	"github.com/nyaysetu/nyaysetu-client/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var roles = []string{"LITIGANT", "LAWYER", "JUDGE"}

// Register prompts for name, email, role and password and creates an
// account. It does not sign in.
func (a *App) Register(ctx context.Context) error {
	var r api.Registration
	var err error
	if r.Name, err = getSimpleText(a.reader, "Enter full name", a.out); err != nil {
		return err
	}
	if r.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if r.Role, err = GetChoice(a.reader, "Enter role", roles, a.out); err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	r.Password = string(password)

	if err := a.authService.Register(ctx, r); err != nil {
		return a.report("Registration", err)
	}
	a.println("Success! You can now login.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return a.report("Login", err)
	}

	a.mu.Lock()
	a.userName = u.Name
	a.mu.Unlock()
	a.printf("Login successful. Welcome, %s (%s)\n", u.Name, u.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.report("Logout", err)
	}
	a.mu.Lock()
	a.userName = ""
	a.mu.Unlock()
	a.println("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.Current(ctx)
	if err != nil {
		if session.IsNoSession(err) {
			a.println("Not logged in")
			return nil
		}
		return a.report("Reading session", err)
	}
	a.printf("%s <%s>  role=%s  id=%s\n", u.Name, u.Email, u.Role, u.ID)

	claims, err := a.authService.Claims(ctx)
	if err != nil || claims.ExpiresAt.IsZero() {
		return nil
	}
	if claims.Expired(time.Now()) {
		a.println("Session expired, please login again")
	} else {
		a.printf("Session valid until %s\n", claims.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}
