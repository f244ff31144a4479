package cmd

import (
	"fmt"
	"os"

	"github.com/dt-pm-tools/confluence-md/internal/confluence"
	"github.com/dt-pm-tools/confluence-md/internal/gemini"
	"github.com/dt-pm-tools/confluence-md/internal/publish"
	"github.com/spf13/cobra"
)

var (
	publishMarkdownFile string
	publishTemplateName string
	publishNoTemplate   bool
	publishSpace        string
	publishTitle        string
	publishParentPage   string
	publishAttachments  []string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Create or update a Confluence page from a markdown file",
	Long: `Converts a local markdown file to Confluence storage format and publishes
it as a page, creating the page or updating it in place keyed by (space, title).

With --template-name, the content is merged into the named template's structure
via the Gemini API; without it (or with --no-template) the markdown is converted
directly. With no --title, the next "New Generated Document NNN" title in the
space is used.

Examples:
  confluence-md publish --markdown-file notes.md
  confluence-md publish --markdown-file notes.md --space ENG --title "Release Notes"
  confluence-md publish --markdown-file notes.md --template-name "Design Doc" --parent-page "Designs"
  confluence-md publish --markdown-file notes.md --attach diagram.png --attach data.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if publishMarkdownFile == "" {
			return fmt.Errorf("--markdown-file is required")
		}

		if err := loadConfig(); err != nil {
			return err
		}

		useTemplate := publishTemplateName != "" && !publishNoTemplate

		var ai *gemini.Client
		if useTemplate {
			if err := appConfig.ValidateGemini(); err != nil {
				return err
			}
			ai = gemini.NewClient(appConfig)
		}

		wiki := confluence.NewClient(appConfig)
		pipeline := publish.New(wiki, ai, os.Stderr)

		return pipeline.Run(publish.Options{
			MarkdownFile: publishMarkdownFile,
			TemplateName: publishTemplateName,
			NoTemplate:   publishNoTemplate,
			SpaceKey:     publishSpace,
			Title:        publishTitle,
			ParentPage:   publishParentPage,
			Attachments:  publishAttachments,
		})
	},
}

func init() {
	publishCmd.Flags().StringVar(&publishMarkdownFile, "markdown-file", "", "path to the source markdown file (required)")
	publishCmd.Flags().StringVar(&publishTemplateName, "template-name", "", "Confluence template to merge content into")
	publishCmd.Flags().BoolVar(&publishNoTemplate, "no-template", false, "skip template processing even if --template-name is given")
	publishCmd.Flags().StringVar(&publishSpace, "space", "DBT", "Confluence space key")
	publishCmd.Flags().StringVar(&publishTitle, "title", "", "page title (auto-generated if omitted)")
	publishCmd.Flags().StringVar(&publishParentPage, "parent-page", "", "name of the parent page in the space")
	publishCmd.Flags().StringArrayVar(&publishAttachments, "attach", nil, "file to attach to the page (repeatable)")
	rootCmd.AddCommand(publishCmd)
}
