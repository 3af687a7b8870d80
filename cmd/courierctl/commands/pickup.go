package commands

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"courierbridge/internal/core/domain/model/pickup"

	"github.com/spf13/cobra"
)

func pickupCmd() *cobra.Command {
	var (
		at string
		tz string
	)
	cmd := &cobra.Command{
		Use:   "pickup",
		Short: "Print the pickup slot the courier would be booked for",
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := time.LoadLocation(tz)
			if err != nil {
				return err
			}

			now := time.Now()
			if at != "" {
				if now, err = time.Parse(time.RFC3339, at); err != nil {
					return fmt.Errorf("--at must be RFC 3339: %w", err)
				}
			}

			slot := pickup.NewScheduler(location, nil).At(now)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", slot.Date(), slot.Time(), location)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "instant to schedule from, RFC 3339 (default now)")
	cmd.Flags().StringVar(&tz, "tz", pickup.DefaultTimeZone, "store time zone")
	return cmd
}
