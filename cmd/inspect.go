// Inspect command.
// Unpacks a backup and reports what it contains: the book manifests, the
// directory structure and the chapter list of every book.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/mbz2md/core"
	"github.com/gaurav-prasanna/mbz2md/core/archive"
	"github.com/gaurav-prasanna/mbz2md/core/config"
	"github.com/gaurav-prasanna/mbz2md/core/logging"
	"github.com/gaurav-prasanna/mbz2md/core/manifest"
)

// bookManifests matches book.xml anywhere in the backup.
const bookManifests = "**/book.xml"

var treeFiles = config.DefaultTreeFiles

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Unpack a Moodle backup and list its books and files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInspect(cmd.Context(), opts, treeFiles, cmd.OutOrStdout(), newLogger("mbz2md.inspect"))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&treeFiles, "files", treeFiles, "Files shown per directory (0 shows all)")
}

func runInspect(ctx context.Context, o config.Options, perDir int, stdout io.Writer, log logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := os.Stat(o.Archive); err != nil {
		return core.ArchiveNotFound(o.Archive)
	}

	workDir, cleanup, err := prepareWorkDir(o)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Fprintf(stdout, "Extracting %s...\n", o.Archive)
	files, err := archive.New().Extract(ctx, o.Archive, workDir)
	if err != nil {
		return core.PipelineFailed("extract", err)
	}
	fmt.Fprintf(stdout, "Extracted %d files to %s\n", files, workDir)

	manifests, err := manifest.Find(workDir, bookManifests)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nFound %d book XML file(s)\n", len(manifests))

	parser := manifest.NewParser()
	for _, path := range manifests {
		book, err := parser.Parse(path)
		if err != nil {
			log.Warn("skipping unreadable manifest", "path", path, "error", err)
			continue
		}
		fmt.Fprintf(stdout, "\n%s (%s)\n", book.Title, path)
		printChapters(stdout, book.Chapters)
	}

	lines, err := archive.Tree(workDir, perDir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", workDir, err)
	}
	fmt.Fprintln(stdout, "\nDirectory structure:")
	for _, line := range lines {
		fmt.Fprintln(stdout, line)
	}
	return nil
}

func printChapters(w io.Writer, chapters []core.Chapter) {
	tbl := table.New("Page", "Sub", "Title", "Hidden", "HTML bytes").WithWriter(w)
	for _, ch := range chapters {
		tbl.AddRow(ch.PageNumber, ch.SubchapterIndex, ch.Title, ch.Hidden, len(ch.HTMLContent))
	}
	tbl.Print()
}
