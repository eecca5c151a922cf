package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stockboard/internal/accounts"
)

type registerCmd struct {
	reg accounts.Registration
}

func (*registerCmd) Name() string { return "register" }
func (*registerCmd) Synopsis() string { return "register a user" }
func (*registerCmd) Usage() string {
	return `stockboard register -nombre <n> -apellidos <n> -email <e> -telefono <t> -username <u> -rol <r> -password <p> -confirm <p>
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.reg.Nombre, "nombre", "", "first name")
	f.StringVar(&c.reg.Apellidos, "apellidos", "", "last names")
	f.StringVar(&c.reg.Email, "email", "", "email address")
	f.StringVar(&c.reg.Telefono, "telefono", "", "phone number")
	f.StringVar(&c.reg.Username, "username", "", "login name")
	f.StringVar(&c.reg.Rol, "rol", "", "role")
	f.StringVar(&c.reg.Password, "password", "", "password, at least 6 characters")
	f.StringVar(&c.reg.ConfirmPassword, "confirm", "", "password again")
}

func (c *registerCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, args, func(a *app, s *session) error {
		user, err := s.accounts.Register(ctx, c.reg)
		if err != nil {
			if accounts.IsValidation(err) {
				fmt.Fprintln(a.stderr, err)
			}
			return err
		}
		fmt.Fprintf(a.stdout, "registered %s (%s)\n", user.Username, user.Rol)
		return nil
	})
}

type loginCmd struct {
	user     string
	password string
}

func (*loginCmd) Name() string { return "login" }
func (*loginCmd) Synopsis() string { return "check that a user is registered and greet them" }
func (*loginCmd) Usage() string {
	return `stockboard login -user <username or email> -password <p>
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "username or email")
	f.StringVar(&c.password, "password", "", "password")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, args, func(a *app, s *session) error {
		session, err := s.accounts.Login(ctx, c.user, c.password)
		if err != nil {
			return err
		}
		user, err := s.accounts.Lookup(ctx, session.Username)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Welcome %s!\n", user.Nombre)
		return nil
	})
}
