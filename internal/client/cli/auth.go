package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
	"github.com/dmitrijs2005/moneyflow/internal/client/routes"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// printResult writes an AuthResult the way the shell shows it: the message,
// then the error text, then one line per field.
func printResult(w io.Writer, res models.AuthResult) {
	fmt.Fprintln(w, res.Message)
	if res.Error != "" {
		fmt.Fprintln(w, "  "+res.Error)
	}
	for _, field := range slices.Sorted(maps.Keys(res.FieldErrors)) {
		fmt.Fprintf(w, "  %s: %s\n", field, strings.Join(res.FieldErrors[field], "; "))
	}
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	res := a.session.Login(ctx, email, string(password))
	printResult(a.out, res)
	if !res.Success {
		log.Printf("Login unsuccessful")
		return fmt.Errorf("login: %s", res.Message)
	}

	log.Printf("Login successful")
	a.Navigate(ctx, routes.Dashboard)
	return nil
}

// Register prompts for the account fields and creates the account. The
// user still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	first, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return err
	}

	res := a.session.Register(ctx, models.RegisterRequest{
		Email:     email,
		Password:  string(password),
		FirstName: first,
		LastName:  last,
	})
	printResult(a.out, res)
	if !res.Success {
		return fmt.Errorf("register: %s", res.Message)
	}

	a.Navigate(ctx, routes.Login)
	return nil
}

// Logout ends the session. The session itself navigates to the login route.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the profile and when the access token expires.
func (a *App) WhoAmI(_ context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Profile not loaded")
	} else {
		fmt.Fprintf(a.out, "#%d %s", u.ID, u.Email)
		if name := u.FullName(); name != "" {
			fmt.Fprintf(a.out, " (%s)", name)
		}
		fmt.Fprintln(a.out)
	}

	if exp, ok := a.session.AccessTokenExpiry(); ok {
		fmt.Fprintf(a.out, "Access token expires %s (in %s)\n",
			exp.Local().Format(time.DateTime), time.Until(exp).Round(time.Second))
	}
	return nil
}
