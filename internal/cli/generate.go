package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-relnotes/internal/infra/actions"
	"github.com/runoshun/git-relnotes/internal/usecase"
)

// OutputName is the step output that receives the rendered notes.
const OutputName = "release_notes_content"

// addRunFlags registers the pipeline inputs shared by generate and preview.
func addRunFlags(cmd *cobra.Command, in *usecase.GenerateNotesInput, env *actions.Env) {
	cmd.Flags().StringVarP(&in.TagName, "tag", "t", env.Input("tag_name"), "Release tag (env INPUT_TAG_NAME)")
	cmd.Flags().StringVarP(&in.PrevTagName, "prev-tag", "p", env.Input("prev_tag_name"), "Previous release tag, empty = latest release (env INPUT_PREV_TAG_NAME)")
	cmd.Flags().StringVarP(&in.ConfigPath, "config", "c", env.Input("configuration_file_path"), "Category configuration document (env INPUT_CONFIGURATION_FILE_PATH)")
}

// runPipeline builds the container and runs the GenerateNotes use case.
func runPipeline(cmd *cobra.Command, o *rootOptions, in usecase.GenerateNotesInput) (*usecase.GenerateNotesOutput, error) {
	c, err := o.container(cmd)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	uc, err := c.GenerateNotesUseCase()
	if err != nil {
		return nil, err
	}
	return uc.Execute(cmd.Context(), in)
}

// newGenerateCommand creates the generate command.
func newGenerateCommand(o *rootOptions) *cobra.Command {
	var in usecase.GenerateNotesInput
	var outputPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate release notes for a tag",
		Long: `Generate Markdown release notes for a tag.

The notes are written to stdout, or to --output when given. Inside GitHub
Actions they are also published as the release_notes_content step output.

Examples:
  relnotes generate --tag v1.2.0
  relnotes generate --tag v1.2.0 --prev-tag v1.1.0 --output NOTES.md
  relnotes generate --tag v1.2.0 --local . --repo octo/hello`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := runPipeline(cmd, o, in)
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(out.Content), 0o644); err != nil { //nolint:gosec // Release notes are not sensitive
					return fmt.Errorf("write %s: %w", outputPath, err)
				}
			} else if _, err := fmt.Fprint(cmd.OutOrStdout(), out.Content); err != nil {
				return err
			}

			if _, err := o.env.SetOutput(OutputName, out.Content); err != nil {
				return err
			}
			return nil
		},
	}

	addRunFlags(cmd, &in, o.env)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the notes to this file instead of stdout")

	return cmd
}
