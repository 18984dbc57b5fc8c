/*
Package cli provides the mailmerge command line: inspect a template, preview
a personalized message and send a campaign from local files.
*/
package cli

import (
	"github.com/sangkips/mail-merge-service/internal/config"
	"github.com/sangkips/mail-merge-service/internal/mailer"
	"github.com/spf13/cobra"
)

// deps holds what the commands need from the outside world.
type deps struct {
	loadConfig   func() (*config.Config, error)
	newTransport func(cfg *config.Config) (mailer.Transport, error)
}

func defaultDeps() deps {
	return deps{
		loadConfig: config.LoadConfig,
		newTransport: func(cfg *config.Config) (mailer.Transport, error) {
			return cfg.Transport()
		},
	}
}

// NewRootCmd builds the mailmerge command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "mailmerge",
		Short: "Send personalized emails from a template and a recipient list",
		Long: `mailmerge fills {placeholders} in a .docx or .xlsx template with the
columns of a .csv or .xlsx recipient list and sends one email per row.

Example:
  mailmerge fields --template welcome.docx
  mailmerge preview --template welcome.docx --recipients list.csv --index 3
  mailmerge send --template welcome.docx --recipients list.csv --attach brochure.pdf`,
		SilenceUsage: true,
	}

	root.AddCommand(newFieldsCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newSendCmd(d))

	return root
}
