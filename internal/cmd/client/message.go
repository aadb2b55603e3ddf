package client

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// NewMessageCommand constructs the `message` command group and subcommands.
func NewMessageCommand(baseURL BaseURLFunc) *cobra.Command {
	msgCmd := &cobra.Command{Use: "message", Short: "Message operations"}
	msgCmd.AddCommand(
		newMessagePostCommand(baseURL),
		newMessageListCommand(baseURL),
		newMessageGetCommand(baseURL),
		newMessageDeleteCommand(baseURL),
		newMessageSeenCommand(baseURL),
	)
	return msgCmd
}

func newMessagePostCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Share a text snippet or a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, _ := cmd.Flags().GetString("text")
			file, _ := cmd.Flags().GetString("file")
			user, _ := cmd.Flags().GetString("user")

			body := map[string]string{"userId": user}
			switch {
			case text != "" && file != "":
				return fmt.Errorf("--text and --file are mutually exclusive")
			case text != "":
				body["type"] = "text"
				body["content"] = text
			case file != "":
				name, dataURL, err := fileDataURL(file)
				if err != nil {
					return err
				}
				body["type"] = "file"
				body["name"] = name
				body["url"] = dataURL
			default:
				return fmt.Errorf("one of --text or --file is required")
			}

			var out map[string]any
			if err := postJSON(baseURL()+"/v1/messages", body, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().String("text", "", "Text content to share")
	cmd.Flags().String("file", "", "Path of a file to share")
	cmd.Flags().String("user", "", "Author user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newMessageListCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List live messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, _ := cmd.Flags().GetString("user")
			url := baseURL() + "/v1/messages"
			if user != "" {
				url += "?userId=" + user
			}
			var out []map[string]any
			if err := getJSON(url, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().String("user", "", "Filter by author user id")
	return cmd
}

func newMessageGetCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a single message including its payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out map[string]any
			if err := getJSON(baseURL()+"/v1/messages/"+args[0], &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newMessageDeleteCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := http.NewRequest(http.MethodDelete, baseURL()+"/v1/messages/"+args[0], nil)
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if err := decodeResponse(resp, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

func newMessageSeenCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "seen <id>",
		Short: "Mark a message as seen by this client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out map[string]any
			if err := postJSON(baseURL()+"/v1/messages/"+args[0]+"/seen", map[string]string{}, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
