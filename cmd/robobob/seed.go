package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0xcro3dile/robobob/internal/adapters/database"
	"github.com/0xcro3dile/robobob/internal/adapters/lookup"
	"github.com/0xcro3dile/robobob/internal/domain/usecases"
)

var seedCmd = &cobra.Command{
	Use:   "seed [questions-file]",
	Short: "Import a questions file into the answers database",
	Long: `Reads a question=answer file and upserts every entry into the SQLite
answers database used by the database provider. Later lines replace earlier
ones for the same question.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening questions file: %w", err)
	}
	defer file.Close()

	res, err := lookup.Parse(file)
	if err != nil {
		return fmt.Errorf("parsing questions file: %w", err)
	}
	for _, n := range res.Skipped {
		logger.Warn("Skipping invalid line format", zap.String("path", path), zap.Int("line", n))
	}

	repo, err := database.NewSQLiteRepository(cfg.Database.Path, logger.Named("database"))
	if err != nil {
		return err
	}
	defer repo.Close()

	written, err := usecases.NewIngestUseCase(repo, cfg.Database.BatchSize).Ingest(cmd.Context(), res.Entries)
	if err != nil {
		return err
	}

	total, err := repo.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting questions: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entries (%d skipped lines), database now holds %d questions\n",
		written, len(res.Skipped), total)
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
