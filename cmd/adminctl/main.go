// adminctl performs the administrative identity operations that are
// deliberately not exposed over HTTP: creating and destroying users.
//
// Usage:
//
//	adminctl adduser -email a@x.com     (password is prompted, no echo)
//	adminctl deluser -email a@x.com
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/proplusapp/proplus/internal/server"
	"github.com/proplusapp/proplus/internal/server/config"
	usersrepo "github.com/proplusapp/proplus/internal/server/repositories/users"
	"github.com/proplusapp/proplus/internal/server/services"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: adminctl <adduser|deluser> -email <email>")
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	config.ApplyEnv(cfg)

	ctx := context.Background()

	db, err := server.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := server.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	svc := services.NewUserService(usersrepo.NewPostgresRepository(db), cfg)

	switch args[0] {
	case "adduser":
		return cmdAddUser(ctx, svc, args[1:])
	case "deluser":
		return cmdDelUser(ctx, svc, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func cmdAddUser(ctx context.Context, svc *services.UserService, args []string) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	email := fs.String("email", "", "user email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("email required")
	}

	fmt.Print("Enter password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("password read error: %w", err)
	}

	user, err := svc.Register(ctx, *email, string(password))
	if err != nil {
		return err
	}

	fmt.Printf("created user %s (%s)\n", user.ID, user.Email)
	return nil
}

func cmdDelUser(ctx context.Context, svc *services.UserService, args []string) error {
	fs := flag.NewFlagSet("deluser", flag.ContinueOnError)
	email := fs.String("email", "", "user email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("email required")
	}

	if err := svc.Delete(ctx, *email); err != nil {
		return err
	}

	fmt.Printf("deleted user %s\n", *email)
	return nil
}
