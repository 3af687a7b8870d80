package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"courierbridge/internal/pkg/webhook"

	"github.com/spf13/cobra"
)

func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func secretFrom(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv("SHOPIFY_WEBHOOK_SECRET"); env != "" {
		return env, nil
	}
	return "", errors.New("webhook secret required: pass --secret or set SHOPIFY_WEBHOOK_SECRET")
}

func signCmd() *cobra.Command {
	var secret string
	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Print the webhook signature header value for a payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secretFrom(secret)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			body, err := readPayload(cmd, path)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), webhook.Sign(key, body))
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "webhook shared secret (default $SHOPIFY_WEBHOOK_SECRET)")
	return cmd
}

func verifyCmd() *cobra.Command {
	var secret string
	cmd := &cobra.Command{
		Use:   "verify <signature> [file]",
		Short: "Check a webhook signature against a payload",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secretFrom(secret)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			body, err := readPayload(cmd, path)
			if err != nil {
				return err
			}

			if !webhook.Verify(key, body, args[0]) {
				return errors.New("signature does not match")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signature ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "webhook shared secret (default $SHOPIFY_WEBHOOK_SECRET)")
	return cmd
}
