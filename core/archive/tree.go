package archive

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Tree lists the directory structure below root, one line per entry,
// indented two spaces per level. At most perDir files are shown for each
// directory; perDir <= 0 shows all of them.
func Tree(root string, perDir int) ([]string, error) {
	var lines []string
	err := walkTree(root, filepath.Base(root), 0, perDir, &lines)
	return lines, err
}

func walkTree(dir, name string, level, perDir int, lines *[]string) error {
	*lines = append(*lines, strings.Repeat("  ", level)+name+"/")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var dirs, files []fs.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	if perDir > 0 && len(files) > perDir {
		files = files[:perDir]
	}
	indent := strings.Repeat("  ", level+1)
	for _, f := range files {
		*lines = append(*lines, indent+f.Name())
	}

	for _, d := range dirs {
		if err := walkTree(filepath.Join(dir, d.Name()), d.Name(), level+1, perDir, lines); err != nil {
			return err
		}
	}
	return nil
}
