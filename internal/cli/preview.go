package cli

import (
	"fmt"
	"strings"

	"github.com/sangkips/mail-merge-service/internal/domains/campaigns"
	"github.com/sangkips/mail-merge-service/internal/mailer"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var (
		files campaignFiles
		index int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the message for one recipient without sending",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := files.load()
			if err != nil {
				return err
			}

			svc := campaigns.NewService(mailer.NewLogTransport(0), "", nil)
			p, err := svc.Preview(c, index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recipient %d of %d\n", p.Index+1, p.Total)
			fmt.Fprintf(out, "To: %s\n", p.To)
			fmt.Fprintf(out, "Subject: %s\n", p.Subject)
			if len(p.MissingFields) > 0 {
				fmt.Fprintf(out, "Missing fields: %s\n", strings.Join(p.MissingFields, ", "))
			}
			for _, a := range p.Attachments {
				fmt.Fprintf(out, "Attachment: %s (%s, %d bytes)\n", a.Name, a.Kind, a.Size)
			}
			fmt.Fprintf(out, "\n%s\n", p.Body)
			return nil
		},
	}

	cmd.Flags().StringVarP(&files.template, "template", "t", "", "template file (.docx or .xlsx)")
	cmd.Flags().StringVarP(&files.recipients, "recipients", "r", "", "recipient list (.csv or .xlsx)")
	cmd.Flags().StringSliceVarP(&files.attachments, "attach", "a", nil, "file attached to every message (repeatable)")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "zero-based recipient index")
	cmd.MarkFlagRequired("template")
	cmd.MarkFlagRequired("recipients")

	return cmd
}
