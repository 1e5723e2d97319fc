package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/biopage/biopage/internal/app"
	"github.com/biopage/biopage/internal/config"
	"github.com/biopage/biopage/internal/ui"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build <saved-page.html>",
	Short: "Generate the static site from a saved profile page",
	Long: `Build parses the saved profile page, pulls the account, link and
social-link data out of its embedded payload, downloads the avatar image,
and writes index.html, style.css and the avatar into the output directory.

Malformed individual link records are skipped with a diagnostic; a missing
or unreadable payload aborts the build.`,
	Example: `  # Generate into ./public
  biopage build linktree.html

  # Generate into a custom directory with page settings
  biopage build linktree.html --out=site --role="Data Engineer" --location="Berlin"

  # Offline build, skip the avatar download
  biopage build linktree.html --no-avatar`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("out", "o", "", "Output directory (default \"public\")")
	buildCmd.Flags().Bool("no-avatar", false, "Skip downloading the avatar image")
	buildCmd.Flags().String("site-title", "", "Page title (defaults to @username)")
	buildCmd.Flags().String("tagline", "", "Short tagline shown under the profile name")
	buildCmd.Flags().String("location", "", "Location line shown in the sidebar")
	buildCmd.Flags().String("role", "", "Role line shown in the sidebar")
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close(ctx)

	log.Debug().Str("input", inputPath).Str("out", cfg.OutputDir).Msg("Starting build")

	summary, err := application.Run(ctx, inputPath)
	if err != nil {
		fmt.Println(ui.Error("✗ Build failed: " + err.Error()))
		return err
	}

	fmt.Println(ui.Success(fmt.Sprintf("✓ Generated site for @%s in %s", summary.Username, filepath.Clean(summary.OutputDir))))
	fmt.Printf("  %d links, %d social links\n", summary.Links, summary.SocialLinks)
	if summary.SkippedLinks > 0 {
		fmt.Println(ui.Info(fmt.Sprintf("  %d malformed link entries skipped", summary.SkippedLinks)))
	}
	if !summary.AvatarSaved {
		fmt.Println(ui.Info("  no avatar image saved"))
	}

	return nil
}
