package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Tag management commands",
}

var (
	tagNotebookID string
	tagName       string
	tagFilePath   string
	tagListAsJSON bool
)

var tagCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new tag in a notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.CreateTag(tagNotebookID, tagName); err != nil {
			return err
		}
		fmt.Println("Tag created:", tagName)
		return nil
	},
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a tag from a notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.DeleteTag(tagNotebookID, tagName); err != nil {
			return err
		}
		fmt.Println("Tag deleted:", tagName)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags in a notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		tags, err := e.ListTags(tagNotebookID)
		if err != nil {
			return err
		}

		if tagListAsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tags)
		}
		if len(tags) == 0 {
			fmt.Println("No tags in notebook")
			return nil
		}
		fmt.Println("Tags:")
		for _, t := range tags {
			fmt.Println("  " + t.Name)
		}
		return nil
	},
}

var tagAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a tag to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.TagFile(tagNotebookID, tagFilePath, tagName); err != nil {
			return err
		}
		fmt.Println("Tag added to file:", tagName)
		return nil
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a tag from a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.UntagFile(tagNotebookID, tagFilePath, tagName); err != nil {
			return err
		}
		fmt.Println("Tag removed from file:", tagName)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{tagCreateCmd, tagDeleteCmd, tagListCmd, tagAddCmd, tagRemoveCmd} {
		c.Flags().StringVar(&tagNotebookID, "notebook", "", "notebook id (required)")
		_ = c.MarkFlagRequired("notebook")
	}
	for _, c := range []*cobra.Command{tagCreateCmd, tagDeleteCmd, tagAddCmd, tagRemoveCmd} {
		c.Flags().StringVar(&tagName, "name", "", "tag name (required)")
		_ = c.MarkFlagRequired("name")
	}
	for _, c := range []*cobra.Command{tagAddCmd, tagRemoveCmd} {
		c.Flags().StringVar(&tagFilePath, "file", "", "file path relative to notebook (required)")
		_ = c.MarkFlagRequired("file")
	}
	tagListCmd.Flags().BoolVar(&tagListAsJSON, "json", false, "output as JSON")

	tagCmd.AddCommand(tagCreateCmd, tagDeleteCmd, tagListCmd, tagAddCmd, tagRemoveCmd)
}
