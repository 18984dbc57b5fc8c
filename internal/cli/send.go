package cli

import (
	"fmt"

	"github.com/sangkips/mail-merge-service/internal/domains/campaigns"
	"github.com/sangkips/mail-merge-service/internal/mailer"
	"github.com/sangkips/mail-merge-service/internal/queue"
	"github.com/spf13/cobra"
)

func newSendCmd(d deps) *cobra.Command {
	var (
		files  campaignFiles
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one personalized email per recipient",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := d.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.SetupLogging()

			c, err := files.load()
			if err != nil {
				return err
			}

			var transport mailer.Transport
			if dryRun {
				transport = mailer.NewLogTransport(0)
			} else if transport, err = d.newTransport(cfg); err != nil {
				return fmt.Errorf("failed to create mail transport: %w", err)
			}

			var recorder campaigns.DeliveryRecorder
			if cfg.RabbitMQURL != "" && !dryRun {
				rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
				if err != nil {
					return err
				}
				defer rabbitMQ.Close()
				recorder = rabbitMQ
			}

			svc := campaigns.NewService(transport, cfg.SMTPFrom, recorder)
			result, err := svc.Run(cmd.Context(), c)
			if err != nil && result == nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range result.Failures {
				fmt.Fprintf(out, "Failed to send to %q (row %d): %s\n", f.To, f.Index+1, f.Error)
			}
			fmt.Fprintf(out, "Successfully sent %d out of %d emails\n", result.Sent, result.Total)
			return err
		},
	}

	cmd.Flags().StringVarP(&files.template, "template", "t", "", "template file (.docx or .xlsx)")
	cmd.Flags().StringVarP(&files.recipients, "recipients", "r", "", "recipient list (.csv or .xlsx)")
	cmd.Flags().StringSliceVarP(&files.attachments, "attach", "a", nil, "file attached to every message (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log messages instead of sending them")
	cmd.MarkFlagRequired("template")
	cmd.MarkFlagRequired("recipients")

	return cmd
}
