package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/talhabaig007/PhishStop/internal/cli"
	"github.com/talhabaig007/PhishStop/internal/model"
)

func blacklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Manage the phishing domain blacklist",
		Long: `Inspect and edit the blacklist consulted by the analysis service.

A blacklisted domain also covers all of its subdomains. Besides the
entries managed here, the matcher ships with a built-in set of known
URL shorteners and demo phishing hosts.`,
	}

	cmd.AddCommand(blacklistListCmd())
	cmd.AddCommand(blacklistAddCmd())
	cmd.AddCommand(blacklistRemoveCmd())

	return cmd
}

func blacklistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blacklisted domains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			matcher, err := loadMatcher(ctx, store)
			if err != nil {
				return err
			}

			entries, err := store.ListBlacklistDomains(ctx)
			if err != nil {
				return fmt.Errorf("failed to load blacklist: %w", err)
			}

			persisted := make(map[string]model.BlacklistEntry, len(entries))
			for _, e := range entries {
				persisted[e.Domain] = e
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Blacklisted domains (%d)", matcher.Len())))
			for _, domain := range matcher.Domains() {
				annotation := "built-in"
				if e, ok := persisted[domain]; ok {
					annotation = e.Reason
				}
				fmt.Printf("  %s  %s\n", domain, cli.SubtleStyle.Render(annotation))
			}

			return nil
		},
	}
}

func blacklistAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <domain>",
		Short: "Add a domain to the blacklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reason, _ := cmd.Flags().GetString("reason")

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			matcher, err := loadMatcher(ctx, store)
			if err != nil {
				return err
			}

			if matcher.Contains(args[0]) {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("%s is already blacklisted", args[0])))
				return nil
			}

			if err := matcher.Add(ctx, args[0], reason); err != nil {
				return fmt.Errorf("failed to blacklist %s: %w", args[0], err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Blacklisted %s", args[0])))
			return nil
		},
	}

	cmd.Flags().String("reason", "User reported", "why the domain is being blacklisted")

	return cmd
}

func blacklistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <domain>",
		Short: "Remove a domain from the blacklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			matcher, err := loadMatcher(ctx, store)
			if err != nil {
				return err
			}

			if !matcher.Contains(args[0]) {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("%s is not blacklisted", args[0])))
				return nil
			}

			if err := matcher.Remove(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to remove %s: %w", args[0], err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %s from the blacklist", args[0])))
			return nil
		},
	}
}
