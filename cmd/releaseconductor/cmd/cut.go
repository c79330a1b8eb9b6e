package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokify/releaseconductor/internal/notes"
	"github.com/grokify/releaseconductor/internal/pipeline"
	"github.com/grokify/releaseconductor/internal/repohost"
	"github.com/grokify/releaseconductor/internal/resolve"
	"github.com/grokify/releaseconductor/internal/report"
	"github.com/grokify/releaseconductor/pkg/model"
)

var cutCmd = &cobra.Command{
	Use:   "cut",
	Short: "Cut a prerelease for a tag on its release branch",
	Long: `Cut a prerelease for the requested tag: resolve the effective version,
replace any prior release and tag for it, tag the release branch tip, create
a prerelease with generated notes, and publish the notes reformatted into
taxonomy sections.

When a prerelease already exists for the requested tag and its release branch
exists, the patch version is bumped and the existing release line continues.

Examples:
  # Cut v1.2.3 for acme/widget
  releaseconductor cut --repo acme/widget --tag v1.2.3

  # Show what would happen without changing anything
  releaseconductor cut --repo acme/widget --tag v1.2.3 --dry-run

  # Use a custom ticket taxonomy for note formatting
  releaseconductor cut --repo acme/widget --tag v1.2.3 --taxonomy taxonomy.yaml`,
	RunE: runCut,
}

func init() {
	rootCmd.AddCommand(cutCmd)

	cutCmd.Flags().String("tag", "", "Tag to release (vMAJOR.MINOR.PATCH with optional suffix)")
	cutCmd.Flags().Bool("dry-run", false, "Show what would happen without making changes")
	cutCmd.Flags().String("tag-message", "", "Annotated tag message (default \"Release <tag>\")")
	cutCmd.Flags().String("taxonomy", "", "Path to a taxonomy YAML file for note formatting")
	cutCmd.Flags().String("model", notes.DefaultModel, "OpenAI model for note formatting")
	cutCmd.Flags().Float64("temperature", float64(notes.DefaultTemperature), "Sampling temperature for note formatting")
	cutCmd.Flags().String("api-base-url", "", "GitHub API base URL (for GitHub Enterprise)")
	cutCmd.Flags().String("openai-base-url", "", "OpenAI API base URL")

	_ = cutCmd.MarkFlagRequired("tag")

	bindFlags("cut", cutCmd.Flags(), "tag", "dry-run", "tag-message", "taxonomy",
		"model", "temperature", "api-base-url", "openai-base-url")
}

func runCut(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	token := viper.GetString("token")
	if token == "" {
		return fmt.Errorf("GitHub token required. Set GITHUB_TOKEN or use --token flag")
	}

	repoRef, err := resolveRepo()
	if err != nil {
		return err
	}

	tag := viper.GetString("cut.tag")
	dryRun := viper.GetBool("cut.dry-run")

	host, err := repohost.NewGitHubHost(repohost.Config{
		Token:   token,
		Repo:    repoRef,
		BaseURL: viper.GetString("cut.api-base-url"),
	})
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	// Dry runs stop before note formatting, so the formatter is only
	// built for executing runs.
	var noteFormatter notes.Formatter
	if !dryRun {
		key := viper.GetString("openai-key")
		if key == "" {
			return fmt.Errorf("OpenAI API key required. Set OPENAI_API_KEY or use --openai-key flag")
		}

		taxonomy := notes.DefaultTaxonomy()
		if path := viper.GetString("cut.taxonomy"); path != "" {
			taxonomy, err = notes.LoadTaxonomyFromFile(path)
			if err != nil {
				return fmt.Errorf("failed to load taxonomy: %w", err)
			}
		}

		noteFormatter, err = notes.NewOpenAIFormatter(notes.Config{
			APIKey:      key,
			Model:       viper.GetString("cut.model"),
			Temperature: float32(viper.GetFloat64("cut.temperature")),
			BaseURL:     viper.GetString("cut.openai-base-url"),
			Taxonomy:    taxonomy,
		})
		if err != nil {
			return fmt.Errorf("failed to create note formatter: %w", err)
		}
	}

	p := pipeline.New(host, resolve.NewResolver(host), noteFormatter, pipeline.Options{
		DryRun:     dryRun,
		TagMessage: viper.GetString("cut.tag-message"),
	})

	slog.Debug("cutting release", "repo", repoRef.FullName(), "tag", tag, "dryRun", dryRun)

	result, err := p.Run(ctx, tag)
	if err != nil {
		return fmt.Errorf("release cut failed: %w", err)
	}
	result.Repo = repoRef

	// Generate output
	format := viper.GetString("format")
	var formatter report.Formatter

	switch format {
	case "json":
		formatter = report.NewJSONFormatter()
	case "markdown", "md":
		formatter = report.NewMarkdownFormatter()
	default:
		formatter = report.NewTableFormatter()
	}

	output, err := formatter.FormatCutResult(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Print(output)

	return nil
}

// resolveRepo combines the --owner and --repo flags into a repository reference.
func resolveRepo() (model.RepoRef, error) {
	owner := viper.GetString("owner")
	repo := viper.GetString("repo")

	if repo == "" {
		return model.RepoRef{}, fmt.Errorf("repository required. Use --repo owner/name, or --owner with --repo")
	}
	if strings.Contains(repo, "/") {
		ref := model.ParseRepoRef(repo)
		if ref.Owner == "" || ref.Name == "" {
			return model.RepoRef{}, fmt.Errorf("invalid repository %q, expected owner/name", repo)
		}
		return ref, nil
	}
	if owner == "" {
		return model.RepoRef{}, fmt.Errorf("repository owner required. Use --owner or --repo owner/name")
	}
	return model.RepoRef{Owner: owner, Name: repo}, nil
}
