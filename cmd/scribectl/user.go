package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	authsvc "github.com/yadascribe/scribe-backend/internal/service/auth"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage editor accounts",
	}
	cmd.AddCommand(userAddCmd())
	cmd.AddCommand(userPasswdCmd())
	return cmd
}

func userAddCmd() *cobra.Command {
	var code, name, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an editor account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readPassword(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			u, err := e.services().Auth.CreateUser(cmd.Context(), authsvc.CreateUserInput{
				Code:     code,
				FullName: name,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (key %d)\n", u.Code, u.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "login code")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func userPasswdCmd() *cobra.Command {
	var code, password string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Replace the password of an editor account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readPassword(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.services().Auth.SetPassword(cmd.Context(), code, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", code)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "login code")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

// readPassword takes the first line of r, without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("read password: empty input")
	}
	return line, nil
}
