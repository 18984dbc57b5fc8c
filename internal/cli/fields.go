package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFieldsCmd() *cobra.Command {
	var templatePath string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the placeholders a template uses",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTemplate(templatePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, field := range t.Fields() {
				fmt.Fprintln(out, field)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "template file (.docx or .xlsx)")
	cmd.MarkFlagRequired("template")

	return cmd
}
