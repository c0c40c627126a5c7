package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/api"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for email and password and tries to sign in.
//
// On success the session is persisted and the guard moves the user to the
// main menu. Authentication rejections are reported with the server's own
// message; a transport failure is reported as the service being unreachable.
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if err := a.authService.SignIn(ctx, email, string(password)); err != nil {
		var authErr *api.AuthError
		switch {
		case errors.As(err, &authErr):
			log.Printf("Login failed: %s", authErr.Message)
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Service unreachable, please try again later")
		default:
			log.Printf("Login failed: %s", err.Error())
		}
		return err
	}

	return nil
}

// Register prompts for the details of a new account and submits them. The
// password is asked for twice and the two entries must match before anything
// is sent to the server. Both password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	phone, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	confirmation, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirmation)

	if !bytes.Equal(password, confirmation) {
		fmt.Println("Passwords do not match")
		return errors.New("passwords do not match")
	}

	reg := api.Registration{
		Name:                 name,
		Email:                email,
		PhoneNumber:          phone,
		Password:             string(password),
		PasswordConfirmation: string(confirmation),
	}

	if err := a.authService.SignUp(ctx, reg); err != nil {
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			log.Printf("Registration failed: %s", authErr.Message)
		} else {
			log.Printf("Registration failed: %s", err.Error())
		}
		return err
	}

	fmt.Println("Account created!")
	return nil
}

// Logout ends the session. This always succeeds locally; a failed remote
// invalidation is logged by the service and never shown as an error here.
func (a *App) Logout(ctx context.Context) error {
	a.authService.SignOut(ctx)
	return nil
}

// WhoAmI prints the signed-in user's profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.authService.CurrentUser()
	if u == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	if u.PhoneNumber != "" {
		fmt.Printf("Phone: %s\n", u.PhoneNumber)
	}
	if u.PreferredLanguage != "" {
		fmt.Printf("Language: %s\n", u.PreferredLanguage)
	}
	return nil
}
