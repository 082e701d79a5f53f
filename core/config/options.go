// Package config holds the command options of mbz2md and their validation.
package config

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gaurav-prasanna/mbz2md/core/manifest"
	"github.com/gaurav-prasanna/mbz2md/core/normalize"
	"github.com/gaurav-prasanna/mbz2md/core/render"
)

// Defaults used when no flags are given.
const (
	DefaultArchive   = "backup-moodle2-activity-2600518-book2600518-20260108-1341-nu.mbz"
	DefaultOutput    = "oppimateriaali-2600518-20260108.md"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"
	DefaultTreeFiles = 10
)

// Options configures a conversion run.
type Options struct {
	// Archive is the .mbz file to convert.
	Archive string
	// Output is the destination file; its extension follows the format.
	Output string
	// WorkDir is where the archive is unpacked. Empty means a temporary
	// directory that is removed afterwards.
	WorkDir string
	// KeepWorkDir leaves the unpacked archive in place.
	KeepWorkDir bool
	// Manifest is a glob, relative to the work directory, selecting book.xml.
	Manifest string
	Format   string
	Engine   string
	// Clean strips script/style/embed noise from chapters before conversion.
	Clean bool
	// Split also writes one file per chapter next to Output.
	Split       bool
	FrontMatter bool
	LogLevel    string
	LogFormat   string
}

// Default returns the options used when no flags are given.
func Default() Options {
	return Options{
		Archive:   DefaultArchive,
		Output:    DefaultOutput,
		Manifest:  manifest.DefaultPattern,
		Format:    string(render.FormatMarkdown),
		Engine:    string(normalize.EngineNative),
		Clean:     true,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Validate checks that the options describe a runnable conversion.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Archive, validation.Required, validation.By(notBlank("archive"))),
		validation.Field(&o.Output, validation.Required, validation.By(notBlank("output"))),
		validation.Field(&o.Manifest, validation.Required),
		validation.Field(&o.Format, validation.Required, validation.In(stringsOf(render.Formats)...)),
		validation.Field(&o.Engine, validation.Required, validation.In(stringsOf(normalize.Engines)...)),
		validation.Field(&o.LogLevel, validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")),
		validation.Field(&o.LogFormat, validation.In("console", "json", "pretty")),
	)
}

func notBlank(field string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("mbz2md.options."+field+"_blank", field+" must not be blank")
		}
		return nil
	}
}

func stringsOf[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
