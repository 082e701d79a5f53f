package cmd

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/mbz2md/core/config"
	"github.com/gaurav-prasanna/mbz2md/core/logging"
)

const bookXML = `<?xml version="1.0" encoding="UTF-8"?>
<activity id="1" modulename="book">
  <book id="7">
    <name>Course</name>
    <chapters>
      <chapter id="2">
        <pagenum>2</pagenum>
        <subchapter>0</subchapter>
        <title>Details</title>
        <content>&lt;ul&gt;&lt;li&gt;a&lt;/li&gt;&lt;li&gt;b&lt;/li&gt;&lt;/ul&gt;</content>
        <hidden>0</hidden>
      </chapter>
      <chapter id="1">
        <pagenum>1</pagenum>
        <subchapter>0</subchapter>
        <title>Intro</title>
        <content>&lt;p&gt;Hello &lt;strong&gt;world&lt;/strong&gt;&lt;/p&gt;&lt;script&gt;alert(1)&lt;/script&gt;</content>
        <hidden>0</hidden>
      </chapter>
      <chapter id="3">
        <pagenum>3</pagenum>
        <subchapter>0</subchapter>
        <title>Draft</title>
        <content>&lt;p&gt;secret&lt;/p&gt;</content>
        <hidden>1</hidden>
      </chapter>
    </chapters>
  </book>
</activity>`

const wantMarkdown = "# Course\n\n## Intro\nHello **world**\n\n## Details\n- a\n- b\n"

func writeBackup(t *testing.T, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "backup.mbz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func testOptions(t *testing.T, archive string) config.Options {
	t.Helper()
	o := config.Default()
	o.Archive = archive
	o.Output = filepath.Join(t.TempDir(), "book.md")
	return o
}

func TestRunConvertWritesMarkdown(t *testing.T) {
	archive := writeBackup(t, map[string]string{
		"moodle_backup.xml":          "<moodle_backup/>",
		"activities/book_7/book.xml": bookXML,
	})
	o := testOptions(t, archive)

	var stdout bytes.Buffer
	path, err := runConvert(context.Background(), o, &stdout, logging.NoOp())
	require.NoError(t, err)
	assert.Equal(t, o.Output, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, wantMarkdown, string(data))

	out := stdout.String()
	assert.Contains(t, out, "Found 2 chapters")
	assert.Contains(t, out, "Markdown file created: "+path)
	assert.Contains(t, out, "Total size: ")
}

func TestRunConvertMissingArchive(t *testing.T) {
	o := testOptions(t, filepath.Join(t.TempDir(), "missing.mbz"))

	_, err := runConvert(context.Background(), o, &bytes.Buffer{}, logging.NoOp())
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.Contains(t, err.Error(), "missing.mbz")

	_, statErr := os.Stat(o.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunConvertMissingManifest(t *testing.T) {
	archive := writeBackup(t, map[string]string{"moodle_backup.xml": "<moodle_backup/>"})
	o := testOptions(t, archive)

	_, err := runConvert(context.Background(), o, &bytes.Buffer{}, logging.NoOp())
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.Contains(t, err.Error(), "book XML not found")

	_, statErr := os.Stat(o.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunConvertRejectsInvalidOptions(t *testing.T) {
	o := testOptions(t, "backup.mbz")
	o.Format = "docx"

	_, err := runConvert(context.Background(), o, &bytes.Buffer{}, logging.NoOp())
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
}

func TestRunConvertJSONSwapsExtension(t *testing.T) {
	archive := writeBackup(t, map[string]string{"activities/book_7/book.xml": bookXML})
	o := testOptions(t, archive)
	o.Format = "json"

	var stdout bytes.Buffer
	path, err := runConvert(context.Background(), o, &stdout, logging.NoOp())
	require.NoError(t, err)
	assert.Equal(t, ".json", filepath.Ext(path))
	assert.Contains(t, stdout.String(), "JSON file created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Course"`)
}

func TestRunConvertSplit(t *testing.T) {
	archive := writeBackup(t, map[string]string{"activities/book_7/book.xml": bookXML})
	o := testOptions(t, archive)
	o.Split = true

	var stdout bytes.Buffer
	path, err := runConvert(context.Background(), o, &stdout, logging.NoOp())
	require.NoError(t, err)

	dir := filepath.Join(filepath.Dir(path), "book-chapters")
	intro, err := os.ReadFile(filepath.Join(dir, "01-intro.md"))
	require.NoError(t, err)
	assert.Equal(t, "## Intro\n\nHello **world**\n", string(intro))

	details, err := os.ReadFile(filepath.Join(dir, "02-details.md"))
	require.NoError(t, err)
	assert.Equal(t, "## Details\n\n- a\n- b\n", string(details))
	assert.Equal(t, 2, strings.Count(stdout.String(), "✓ Written"))
}

func TestRunConvertKeepsWorkDir(t *testing.T) {
	archive := writeBackup(t, map[string]string{"activities/book_7/book.xml": bookXML})
	o := testOptions(t, archive)
	o.WorkDir = t.TempDir()

	_, err := runConvert(context.Background(), o, &bytes.Buffer{}, logging.NoOp())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(o.WorkDir, "activities", "book_7", "book.xml"))
}

func TestRunInspect(t *testing.T) {
	archive := writeBackup(t, map[string]string{
		"moodle_backup.xml":          "<moodle_backup/>",
		"activities/book_7/book.xml": bookXML,
	})
	o := testOptions(t, archive)

	var stdout bytes.Buffer
	require.NoError(t, runInspect(context.Background(), o, 10, &stdout, logging.NoOp()))

	out := stdout.String()
	assert.Contains(t, out, "Extracted 2 files")
	assert.Contains(t, out, "Found 1 book XML file(s)")
	assert.Contains(t, out, "Course (")
	assert.Contains(t, out, "Draft")
	assert.Contains(t, out, "Directory structure:")
	assert.Contains(t, out, "activities/")
}

func TestRunInspectWithoutBooks(t *testing.T) {
	archive := writeBackup(t, map[string]string{"moodle_backup.xml": "<moodle_backup/>"})
	o := testOptions(t, archive)

	var stdout bytes.Buffer
	require.NoError(t, runInspect(context.Background(), o, 10, &stdout, logging.NoOp()))
	assert.Contains(t, stdout.String(), "Found 0 book XML file(s)")
}
