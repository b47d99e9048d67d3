// Package main содержит консольный клиент сервиса аутентификации.
//
// Команды:
//
//	authcli register -name NAME -email EMAIL
//	authcli login -email EMAIL
//	authcli whoami
//	authcli logout
//
// Пароль запрашивается интерактивно и не попадает в историю шелла.
// Токен сохраняется между запусками в каталоге конфигурации пользователя.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/drinkshop/auth-service/internal/client/api"
	"github.com/drinkshop/auth-service/internal/client/session"
	"github.com/drinkshop/auth-service/internal/client/tokenstore"
)

const requestTimeout = 10 * time.Second

func main() {
	serverURL := flag.String("server", envOrDefault("DRINKSHOP_API_URL", "http://localhost:8080/api"), "base API URL")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	tokenPath, err := tokenstore.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	client := api.New(*serverURL, requestTimeout)
	sess := session.New(client, tokenstore.NewFileStore(tokenPath), logger)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	sess.Init(ctx)

	var exitCode int
	switch flag.Arg(0) {
	case "register":
		exitCode = runRegister(ctx, sess, flag.Args()[1:])
	case "login":
		exitCode = runLogin(ctx, sess, flag.Args()[1:])
	case "whoami":
		exitCode = runWhoami(ctx, sess)
	case "logout":
		sess.Logout(ctx)
		fmt.Println("logged out")
	default:
		usage()
		exitCode = 2
	}
	os.Exit(exitCode)
}

func runRegister(ctx context.Context, sess *session.Session, args []string) int {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	_ = fs.Parse(args)

	if *name == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "register requires -name and -email")
		return 2
	}

	pass, err := readPassword("Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	result := sess.Register(ctx, *name, *email, pass)
	if !result.Success {
		fmt.Fprintln(os.Stderr, result.Message)
		return 1
	}
	fmt.Println("registered as", *email)
	return 0
}

func runLogin(ctx context.Context, sess *session.Session, args []string) int {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	_ = fs.Parse(args)

	if *email == "" {
		fmt.Fprintln(os.Stderr, "login requires -email")
		return 2
	}

	pass, err := readPassword("Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	result := sess.Login(ctx, *email, pass)
	if !result.Success {
		fmt.Fprintln(os.Stderr, result.Message)
		return 1
	}
	fmt.Println("logged in as", *email)
	return 0
}

func runWhoami(ctx context.Context, sess *session.Session) int {
	user, err := sess.RequireUser(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "not logged in")
		return 1
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	if user.LastLogin != nil {
		fmt.Println("last login:", user.LastLogin.Local().Format(time.RFC1123))
	}
	return 0
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pass), nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: authcli [-server URL] <register|login|whoami|logout> [flags]")
}
