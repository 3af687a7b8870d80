package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"courierbridge/internal/generated/servers"

	"github.com/spf13/cobra"
)

func deliveryCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "delivery <key>",
		Short: "Show the reservation and booked job for an idempotency key",
		Long: "Show the reservation and booked job for an idempotency key,\n" +
			"e.g. order:5829485412 or fulfillment_order:6391282876.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: 10 * time.Second}
			endpoint := strings.TrimRight(serviceURL, "/") + "/api/v1/deliveries/" + url.PathEscape(args[0])

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}
			if token == "" {
				token = os.Getenv("OPERATOR_TOKEN")
			}
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				var apiErr servers.Error
				if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
					return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
				}
				return fmt.Errorf("%s", resp.Status)
			}

			var out bytes.Buffer
			if err := json.Indent(&out, body, "", "  "); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "operator bearer token (default $OPERATOR_TOKEN)")
	return cmd
}
