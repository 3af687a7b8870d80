// Package commands implements courierctl, the operator's companion to the
// courier bridge service.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	serviceURL string
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "courierctl",
		Short:         "Operate the courier bridge",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&serviceURL, "url", "http://127.0.0.1:8080", "courier bridge base URL")

	root.AddCommand(signCmd(), verifyCmd(), pickupCmd(), deliveryCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
