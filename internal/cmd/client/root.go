package client

import (
	"github.com/spf13/cobra"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewRoot constructs a root Cobra command for the selftransfer client.
// It registers the message, user, and watch command groups.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "selftransfer",
		Short: "selftransfer client commands",
	}
	root.AddCommand(NewMessageCommand(baseURL))
	root.AddCommand(NewUserCommand(baseURL))
	root.AddCommand(NewWatchCommand(baseURL))
	return root
}
