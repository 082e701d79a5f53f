// Convert command.
// This is the main command that orchestrates the pipeline:
// unpack → locate manifest → parse → extract → normalize → assemble →
// render → write.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/mbz2md/core"
	"github.com/gaurav-prasanna/mbz2md/core/archive"
	"github.com/gaurav-prasanna/mbz2md/core/assemble"
	"github.com/gaurav-prasanna/mbz2md/core/config"
	"github.com/gaurav-prasanna/mbz2md/core/extract"
	"github.com/gaurav-prasanna/mbz2md/core/logging"
	"github.com/gaurav-prasanna/mbz2md/core/manifest"
	"github.com/gaurav-prasanna/mbz2md/core/normalize"
	"github.com/gaurav-prasanna/mbz2md/core/output"
	"github.com/gaurav-prasanna/mbz2md/core/render"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a Moodle book backup to Markdown",
	Long: `Convert unpacks the backup, finds the book manifest, converts every
visible chapter from HTML to Markdown and writes a single document.

Examples:
  mbz2md convert
  mbz2md convert --archive backup.mbz --output book.md
  mbz2md convert --format json --output book.json
  mbz2md convert --split --front_matter`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := runConvert(cmd.Context(), opts, cmd.OutOrStdout(), newLogger("mbz2md.convert"))
		return err
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()
	f.StringVar(&opts.Output, "output", opts.Output, "Output file (extension follows --format)")
	f.StringVar(&opts.Manifest, "manifest", opts.Manifest, "Glob selecting the book manifest inside the backup")
	f.StringVar(&opts.Format, "format", opts.Format, "Output format: markdown, json, pdf")
	f.StringVar(&opts.Engine, "engine", opts.Engine, "HTML to Markdown engine: native, html-to-markdown")
	f.BoolVar(&opts.Clean, "clean", opts.Clean, "Strip scripts, styles and embeds from chapters")
	f.BoolVar(&opts.Split, "split", opts.Split, "Also write one Markdown file per chapter")
	f.BoolVar(&opts.FrontMatter, "front_matter", opts.FrontMatter, "Prefix Markdown output with YAML front matter")
}

// runConvert executes the whole pipeline and returns the written path.
func runConvert(ctx context.Context, o config.Options, stdout io.Writer, log logging.Logger) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := o.Validate(); err != nil {
		return "", core.InvalidOptions(err)
	}

	// Check the input first so nothing is created for a missing archive.
	if _, err := os.Stat(o.Archive); err != nil {
		return "", core.ArchiveNotFound(o.Archive)
	}

	renderer, err := render.New(render.Format(o.Format), o.FrontMatter)
	if err != nil {
		return "", core.InvalidOptions(err)
	}
	normalizer, err := normalize.New(normalize.Engine(o.Engine))
	if err != nil {
		return "", core.InvalidOptions(err)
	}

	workDir, cleanup, err := prepareWorkDir(o)
	if err != nil {
		return "", err
	}
	defer cleanup()

	book, err := unpackBook(ctx, o, workDir, stdout, log)
	if err != nil {
		return "", err
	}

	var extractor core.Extractor
	if o.Clean {
		extractor = extract.New()
	}
	doc, err := assemble.New(extractor, normalizer).Assemble(book, filepath.Base(o.Archive))
	if err != nil {
		return "", core.PipelineFailed("assemble", err)
	}
	fmt.Fprintf(stdout, "Found %d chapters\n", doc.Chapters)

	data, err := renderer.Render(doc)
	if err != nil {
		return "", core.PipelineFailed("render", err)
	}

	writer, err := output.New(filepath.Dir(o.Output))
	if err != nil {
		return "", fmt.Errorf("initializing output writer: %w", err)
	}

	name := filepath.Base(o.Output)
	if filepath.Ext(name) != renderer.Extension() {
		name = output.ReplaceExt(name, renderer.Extension())
	}
	path, err := writer.Write(name, data)
	if err != nil {
		return "", err
	}
	log.Info("document written", "path", path, "engine", normalizer.Engine(), "format", o.Format)

	fmt.Fprintf(stdout, "%s file created: %s\n", formatLabel(o.Format), path)
	fmt.Fprintf(stdout, "Total size: %d bytes\n", len(data))

	if o.Split {
		dir := strings.TrimSuffix(name, filepath.Ext(name)) + "-chapters"
		paths, err := writer.WriteSections(dir, doc.Sections)
		if err != nil {
			return path, err
		}
		for _, p := range paths {
			fmt.Fprintf(stdout, "  ✓ Written: %s\n", p)
		}
	}
	return path, nil
}

// unpackBook extracts the backup and parses the first matching manifest.
func unpackBook(ctx context.Context, o config.Options, workDir string, stdout io.Writer, log logging.Logger) (*core.Book, error) {
	fmt.Fprintf(stdout, "Extracting %s...\n", o.Archive)
	files, err := archive.New().Extract(ctx, o.Archive, workDir)
	if err != nil {
		return nil, core.PipelineFailed("extract", err)
	}
	log.Debug("archive extracted", "files", files, "dir", workDir)

	manifests, err := manifest.Locate(workDir, o.Manifest)
	if err != nil {
		return nil, err
	}
	if len(manifests) > 1 {
		log.Warn("several book manifests found, using the first", "count", len(manifests), "manifest", manifests[0])
	}

	fmt.Fprintf(stdout, "Parsing %s...\n", manifests[0])
	book, err := manifest.NewParser().Parse(manifests[0])
	if err != nil {
		return nil, core.PipelineFailed("parse", err)
	}
	log.Debug("manifest parsed", "title", book.Title, "chapters", len(book.Chapters))
	return book, nil
}

// prepareWorkDir returns the unpack directory and a cleanup func that
// removes it when it was created here and is not to be kept.
func prepareWorkDir(o config.Options) (string, func(), error) {
	if o.WorkDir != "" {
		return o.WorkDir, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "mbz2md-")
	if err != nil {
		return "", nil, fmt.Errorf("creating work directory: %w", err)
	}
	if o.KeepWorkDir {
		return dir, func() {}, nil
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

func formatLabel(format string) string {
	switch render.Format(format) {
	case render.FormatJSON:
		return "JSON"
	case render.FormatPDF:
		return "PDF"
	default:
		return "Markdown"
	}
}
