package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/netfleet/netinv/pkg/model"
)

// resolveCredentials builds the Credentials value passed into the core,
// per spec.md §6: NET_USERNAME/NET_PASSWORD/NET_ENABLE populate it, and a
// missing password falls back to an interactive term.ReadPassword prompt
// (the same golang.org/x/term package the teacher uses for raw-mode TTY
// control, extended here to its password-prompt sibling) rather than
// failing outright — this is the one place in the whole tool allowed to
// read the environment or the terminal.
func resolveCredentials(usernameFlag string) (model.Credentials, error) {
	username := usernameFlag
	if username == "" {
		username = os.Getenv("NET_USERNAME")
	}
	if username == "" {
		return model.Credentials{}, fmt.Errorf("username required: set --username or NET_USERNAME")
	}

	password := os.Getenv("NET_PASSWORD")
	if password == "" {
		p, err := promptPassword(fmt.Sprintf("Password for %s: ", username))
		if err != nil {
			return model.Credentials{}, fmt.Errorf("reading password: %w", err)
		}
		password = p
	}

	return model.Credentials{
		Username: username,
		Password: password,
		Enable:   os.Getenv("NET_ENABLE"),
	}, nil
}

// resolveNetBoxTarget reads NETBOX_URL/NETBOX_TOKEN, falling back to the
// engine config's values when the environment does not override them.
func resolveNetBoxTarget(cfgURL, cfgToken string) (url, token string, err error) {
	url = strings.TrimSpace(os.Getenv("NETBOX_URL"))
	if url == "" {
		url = cfgURL
	}
	token = strings.TrimSpace(os.Getenv("NETBOX_TOKEN"))
	if token == "" {
		token = cfgToken
	}
	if url == "" || token == "" {
		return "", "", fmt.Errorf("NetBox URL and token are required: set NETBOX_URL/NETBOX_TOKEN or netbox_url/netbox_token in the engine config")
	}
	return url, token, nil
}

func promptPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return readLine(prompt)
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readLine is the non-interactive fallback (e.g. stdin piped from a
// secrets manager) — plain line read, no echo suppression possible.
func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", scanner.Err()
	}
	return strings.TrimRight(scanner.Text(), "\r\n"), nil
}
