package cmd

import (
	"fmt"

	"github.com/dt-pm-tools/confluence-md/internal/confluence"
	"github.com/spf13/cobra"
)

var templatesSpace string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List page templates visible in a space",
	Long:  `Lists the names of content templates visible to the authenticated account in the given space. Useful for finding the exact name to pass to 'publish --template-name' (matching is case-sensitive).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		client := confluence.NewClient(appConfig)
		templates, err := client.GetTemplates(templatesSpace)
		if err != nil {
			return fmt.Errorf("fetching templates for space %q: %w", templatesSpace, err)
		}

		if len(templates) == 0 {
			fmt.Printf("No templates visible in space %q\n", templatesSpace)
			return nil
		}

		for _, t := range templates {
			fmt.Println(t.Name)
		}
		return nil
	},
}

func init() {
	templatesCmd.Flags().StringVar(&templatesSpace, "space", "DBT", "Confluence space key")
	rootCmd.AddCommand(templatesCmd)
}
