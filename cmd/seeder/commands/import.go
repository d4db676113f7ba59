package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bookmarket-backend/internal/seed"
	"bookmarket-backend/pkg/container"
)

var (
	// Import flags
	dataDir string
)

// importCmd pushes fixtures through the services
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import fixture data",
	Long: `Import fixture data through the application services, so geocoding,
slugs and contributor average cost are computed as for API writes.

Examples:
  seeder import                 # Read ./_data
  seeder import --dir fixtures  # Read ./fixtures`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context())
	},
}

func init() {
	importCmd.Flags().StringVarP(&dataDir, "dir", "d", "_data", "Directory containing users.json, contributors.json, books.json, reviews.json")
	rootCmd.AddCommand(importCmd)
}

func runImport(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fixtures, err := seed.LoadDir(dataDir)
	if err != nil {
		return err
	}

	c, err := container.NewContainer()
	if err != nil {
		return fmt.Errorf("init container: %w", err)
	}
	defer c.Cleanup()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	importer := seed.NewImporter(c.UserService, c.ContributorService, c.BookService, c.ReviewService)
	res, err := importer.Import(ctx, fixtures)
	if err != nil {
		return err
	}

	fmt.Printf("Data imported: %d users, %d contributors, %d books, %d reviews\n",
		res.Users, res.Contributors, res.Books, res.Reviews)
	return nil
}
