package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/sessionstore"
)

func loginCmd(g *globalOpts) *cobra.Command {
	var email, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				p, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}

			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			sess, err := app.auth.Login(cmd.Context(), email, password)
			if err != nil {
				app.log.Warn("auth.login.failed", "err", err)
				return err
			}
			app.log.Info("auth.login.ok", "user", sess.UserLabel())
			printSuccess(cmd.OutOrStdout(), "Logged in as "+sess.UserLabel()+".")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func registerCmd(g *globalOpts) *cobra.Command {
	var sets []string
	var from string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := formValues(from, sets)
			if err != nil {
				return err
			}

			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			sess, err := app.auth.Register(cmd.Context(), values)
			if err != nil {
				return err
			}
			if sess.Empty() {
				printSuccess(cmd.OutOrStdout(), "Account created. Run `bmectl login` to continue.")
				return nil
			}
			printSuccess(cmd.OutOrStdout(), "Account created. Logged in as "+sess.UserLabel()+".")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as name=value (repeatable)")
	cmd.Flags().StringVarP(&from, "from", "f", "", "YAML file with field values (--set wins)")
	return cmd
}

func logoutCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd(g *globalOpts) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			w := cmd.OutOrStdout()
			if local {
				sess, err := app.auth.Current()
				if err != nil {
					return err
				}
				if sess.Empty() {
					return domain.ErrUnauthorized
				}
				if app.cfg.Masking.Enabled {
					sess = sessionstore.Masked(sess)
				}
				return printSession(w, app.format(g), sess, time.Now())
			}

			user, err := app.auth.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			if app.cfg.Masking.Enabled {
				user = sessionstore.MaskRecord(user)
			}
			return printRecord(w, app.format(g), user)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Show the stored session without calling the backend")
	return cmd
}

func refreshCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			sess, err := app.auth.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			msg := "Session refreshed."
			if !sess.ExpiresAt.IsZero() {
				msg = "Session refreshed, valid until " + sess.ExpiresAt.Local().Format(time.RFC1123) + "."
			}
			printSuccess(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func printSession(w io.Writer, format string, sess domain.Session, now time.Time) error {
	if format == formatJSON {
		return printJSON(w, sess)
	}
	if err := checkFormat(format); err != nil {
		return err
	}

	expires := "never"
	if !sess.ExpiresAt.IsZero() {
		expires = sess.ExpiresAt.Local().Format(time.RFC1123)
		if sess.Expired(now) {
			expires += " (expired)"
		}
	}
	rows := [][]string{
		{"Field", "Value"},
		{"user", sess.UserLabel()},
		{"token", sess.Bearer()},
		{"refresh", sess.RefreshToken},
		{"expires", expires},
	}
	return renderTable(w, rows)
}

func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("read password: stdin was empty")
	}
	return line, nil
}
