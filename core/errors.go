package core

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to categorised pipeline errors.
const (
	CodeArchiveNotFound  = "ARCHIVE_NOT_FOUND"
	CodeManifestNotFound = "MANIFEST_NOT_FOUND"
	CodeInvalidOptions   = "INVALID_OPTIONS"
	CodePipelineFailed   = "PIPELINE_FAILED"
)

var (
	ErrArchiveNotFound  = errors.New("archive not found")
	ErrManifestNotFound = errors.New("manifest not found")
)

// ArchiveNotFound reports a missing input archive.
func ArchiveNotFound(path string) error {
	return goerrors.Wrap(ErrArchiveNotFound, goerrors.CategoryValidation, "archive not found: "+path).
		WithTextCode(CodeArchiveNotFound)
}

// ManifestNotFound reports a book manifest missing from the extracted tree.
func ManifestNotFound(expected string) error {
	return goerrors.Wrap(ErrManifestNotFound, goerrors.CategoryValidation, "book XML not found at "+expected).
		WithTextCode(CodeManifestNotFound)
}

// InvalidOptions wraps a validation failure of the command options.
func InvalidOptions(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid options").
		WithTextCode(CodeInvalidOptions)
}

// PipelineFailed wraps an error raised by one of the pipeline stages.
func PipelineFailed(stage string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, stage+" failed").
		WithTextCode(CodePipelineFailed)
}
