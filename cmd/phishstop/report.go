package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/talhabaig007/PhishStop/internal/cli"
	"github.com/talhabaig007/PhishStop/internal/common"
	"github.com/talhabaig007/PhishStop/internal/config"
	"github.com/talhabaig007/PhishStop/internal/model"
	"github.com/talhabaig007/PhishStop/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <url>",
		Short: "Report a misclassified URL to the analysis service",
		Long: `Submit a user correction for a URL.

Reports land in the service's blacklist intake: confirmed_phishing reports
blacklist the reported domain, false_positive reports flag a safe domain
that was wrongly blocked.

Examples:
  phishstop report https://fake-login.net --reason confirmed_phishing
  phishstop report https://my-bank.example --reason false_positive --note "legitimate bank portal"

Delivery is not retried unless --retry is given; a failed report can
always be resubmitted.`,
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}

	cmd.Flags().String("reason", string(model.ReasonConfirmedPhishing), "report reason (false_positive, confirmed_phishing)")
	cmd.Flags().String("note", "", "free-text description attached to the report")
	cmd.Flags().Bool("retry", false, "retry failed delivery with exponential backoff")
	cmd.Flags().String("api", "", "analysis service base URL (default http://localhost:5000)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	reason, _ := cmd.Flags().GetString("reason")
	note, _ := cmd.Flags().GetString("note")
	retry, _ := cmd.Flags().GetBool("retry")
	apiBase, _ := cmd.Flags().GetString("api")
	if apiBase == "" {
		apiBase = config.APIBaseURL()
	}

	client := report.NewClient(apiBase, 0)

	var submitted model.Report
	submit := func() error {
		var err error
		submitted, err = client.Submit(ctx, args[0], model.ReportReason(reason), note)
		return err
	}

	var err error
	if retry {
		err = common.WithRetry(ctx, submit, common.RetryOptions{})
	} else {
		err = submit()
	}
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Report %s delivered: %s (%s)",
		submitted.ID, submitted.Domain, submitted.Reason)))

	return nil
}
