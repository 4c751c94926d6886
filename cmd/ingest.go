package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/smartsupport/internal/documents"
	"github.com/ziadkadry99/smartsupport/internal/progress"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [directory]",
	Short: "Load support documents into the knowledge base",
	Long:  `Walks a directory, chunks every supported document (.txt, .md, .pdf, .docx) and indexes it in the vector store.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringSlice("include", nil, "glob patterns of files to include (default all supported)")
	ingestCmd.Flags().StringSlice("exclude", nil, "glob patterns of files to exclude")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	dir := args[0]

	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	st, err := buildStack()
	if err != nil {
		return err
	}

	// Count candidate files up front so the bar has a total.
	total := 0
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && documents.Supported(path) {
			total++
		}
		return nil
	})

	reporter := progress.NewReporter()
	reporter.Start(total)

	processed := 0
	failed := 0
	added, err := st.ingestor.LoadDirectory(ctx, dir, include, exclude, func(res documents.FileResult) {
		processed++
		if res.Err != nil {
			failed++
		}
		reporter.Update(processed, filepath.Base(res.Path))
	})
	reporter.Finish()
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d chunks from %d files", added, processed-failed)
	if failed > 0 {
		fmt.Printf(" (%d failed)", failed)
	}
	fmt.Printf("; knowledge base now holds %d chunks\n", st.store.Stats().Count)
	return nil
}
