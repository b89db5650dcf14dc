package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/SINO-Proyect/sino-cli/internal/session"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "authenticate and store the session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "email",
				Usage: "account email (prompted if omitted)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := application.RequireWritableCredentials(); err != nil {
				return err
			}

			email := cmd.String("email")
			if email == "" {
				if email, err = promptLine("Email"); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}

			if err := application.Session.Login(ctx, email, password); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", email)
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and store its session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "display name (prompted if omitted)",
			},
			&cli.StringFlag{
				Name:  "email",
				Usage: "account email (prompted if omitted)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := application.RequireWritableCredentials(); err != nil {
				return err
			}

			name := cmd.String("name")
			if name == "" {
				if name, err = promptLine("Name"); err != nil {
					return err
				}
			}
			email := cmd.String("email")
			if email == "" {
				if email, err = promptLine("Email"); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}

			if err := application.Session.Register(ctx, name, email, password); err != nil {
				return err
			}

			fmt.Printf("Registered %s. Check your inbox to verify the address.\n", email)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "invalidate the session and erase stored credentials",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := application.RequireWritableCredentials(); err != nil {
				return err
			}

			if err := application.Session.Logout(ctx); err != nil {
				return err
			}

			fmt.Println("Logged out")
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "revalidate the stored session against the backend",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}

			status, err := application.Session.Verify(ctx)
			if err != nil {
				return err
			}

			switch status {
			case session.VerifyValid:
				email, err := application.Session.Email(ctx)
				if err != nil {
					return err
				}
				verified, err := application.Session.EmailVerified(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Session valid for %s (email verified: %t)\n", email, verified)
			case session.VerifyOffline:
				fmt.Println("Backend unreachable; keeping the stored session")
			case session.VerifyInvalid:
				fmt.Println("Session expired; log in again")
			}
			return nil
		},
	}
}

func recoverCommand() *cli.Command {
	return &cli.Command{
		Name:  "recover",
		Usage: "start the password-recovery flow",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "email",
				Usage: "account email (prompted if omitted)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}

			email := cmd.String("email")
			if email == "" {
				if email, err = promptLine("Email"); err != nil {
					return err
				}
			}

			if err := application.Client.RecoverPassword(ctx, email); err != nil {
				return err
			}

			fmt.Printf("Recovery instructions sent to %s\n", email)
			return nil
		},
	}
}
