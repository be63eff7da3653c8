// Command authctl exercises the auth API the way the web client does:
// signup, login, whoami (bootstrap + profile), and logout against a
// persisted local session.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"voyago/internal/client"
	"voyago/internal/session"
)

func main() {
	serverURL := flag.String("server", "http://localhost:3000", "auth server base URL")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	sessionPath, err := session.DefaultPath()
	if err != nil {
		fatal(err)
	}

	api := client.New(*serverURL)
	manager := session.NewManager(api, session.NewFileStore(sessionPath))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch flag.Arg(0) {
	case "signup":
		err = runSignup(ctx, api)
	case "login":
		err = runLogin(ctx, manager)
	case "whoami":
		err = runWhoami(ctx, manager)
	case "logout":
		err = manager.Logout()
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: authctl [-server URL] signup|login|whoami|logout")
}

func fatal(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, apiErr.Message)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

func runSignup(ctx context.Context, api *client.Client) error {
	email := prompt("Email: ")
	firstName := prompt("First name: ")
	lastName := prompt("Last name (optional): ")
	phone := prompt("Phone (optional): ")
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	resp, err := api.Signup(ctx, client.SignupRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s (user %s)\n", resp.Message, resp.UserID)
	return nil
}

func runLogin(ctx context.Context, manager *session.Manager) error {
	email := prompt("Email: ")
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := manager.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	return nil
}

func runWhoami(ctx context.Context, manager *session.Manager) error {
	state, err := manager.Bootstrap(ctx)
	if err != nil {
		return err
	}
	if state != session.StateAuthenticated {
		fmt.Println("Not logged in")
		return nil
	}

	profile, err := manager.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s <%s>\n", profile.FirstName, profile.LastName, profile.Email)
	if profile.LastLogin != nil {
		fmt.Printf("Last login: %s\n", profile.LastLogin.Format(time.RFC3339))
	}
	return nil
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
