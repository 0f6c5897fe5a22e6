package main

import (
	"chat-feed/client"
	"chat-feed/domain"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	config, err := LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(config, log)
	if err := root.ExecuteContext(ctx); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}

func newRootCommand(config Config, log *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "chatfeed",
		Short:         "Send and follow messages of a chat feed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSendCommand(config),
		newHistoryCommand(config),
		newFollowCommand(config, log),
		newWhoamiCommand(config),
	)
	return root
}

func openTransport(config Config) (client.Transport, error) {
	switch config.Transport {
	case "grpc":
		return client.DialGRPC(config.GRPCAddress)
	case "http":
		return client.NewHTTPTransport(config.HTTPAddress, nil), nil
	default:
		return nil, fmt.Errorf("FEED_TRANSPORT must be http or grpc, got %q", config.Transport)
	}
}

func newSendCommand(config Config) *cobra.Command {
	return &cobra.Command{
		Use:   "send <text>",
		Short: "Append a message to the feed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := client.LoadIdentity(config.IdentityFile)
			if err != nil {
				return err
			}
			transport, err := openTransport(config)
			if err != nil {
				return err
			}
			defer transport.Close()

			record, err := transport.Post(cmd.Context(), domain.PostMessageCommand{
				SenderID:          identity.SenderID,
				SenderDisplayName: identity.DisplayName,
				Text:              strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), client.Render(record, identity, config.Colours))
			return nil
		},
	}
}

func newHistoryCommand(config Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the last messages of the feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			last, _ := cmd.Flags().GetInt("last")
			identity, err := client.LoadIdentity(config.IdentityFile)
			if err != nil {
				return err
			}
			transport, err := openTransport(config)
			if err != nil {
				return err
			}
			defer transport.Close()

			records, err := transport.History(cmd.Context(), last)
			if err != nil {
				return err
			}
			for _, record := range records {
				fmt.Fprintln(cmd.OutOrStdout(), client.Render(record, identity, config.Colours))
			}
			return nil
		},
	}
	cmd.Flags().Int("last", 10, "number of messages to print")
	return cmd
}

func newFollowCommand(config Config, log *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Print the last messages, then every new one until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			last, _ := cmd.Flags().GetInt("last")
			rawFrom, _ := cmd.Flags().GetString("from")
			from, err := domain.ParseCursor(rawFrom)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("from") {
				last = 0
			}
			identity, err := client.LoadIdentity(config.IdentityFile)
			if err != nil {
				return err
			}
			transport, err := openTransport(config)
			if err != nil {
				return err
			}
			defer transport.Close()

			out := cmd.OutOrStdout()
			log.Info("Following feed", "transport", config.Transport, "as", identity.DisplayName)
			follower := client.NewFollower(log, transport, config.GapTimeout, config.MaxRetry)
			return follower.Follow(cmd.Context(), from, last, func(record domain.MessageRecord) error {
				_, err := fmt.Fprintln(out, client.Render(record, identity, config.Colours))
				return err
			})
		},
	}
	cmd.Flags().Int("last", 10, "number of past messages to print first")
	cmd.Flags().String("from", "now", "resume after this sequence id instead of printing history")
	return cmd
}

func newWhoamiCommand(config Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Print or change the local identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := client.LoadIdentity(config.IdentityFile)
			if err != nil {
				return err
			}
			if name, _ := cmd.Flags().GetString("name"); cmd.Flags().Changed("name") {
				if identity, err = identity.WithDisplayName(name); err != nil {
					return err
				}
				if err := identity.Save(config.IdentityFile); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chat: %s (%s)\n", identity.DisplayName, identity.SenderID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "new display name")
	return cmd
}
