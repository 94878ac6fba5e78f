// Package reader collects resume source files (.pdf, .docx) from a set of
// directories and extracts their plain text for downstream parsing.
package reader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

type extractFunc func(path string) (string, error)

var extractors = map[string]extractFunc{
	".pdf":  extractPDF,
	".docx": extractDOCX,
}

type Reader struct {
	dirs []string
	log  zerolog.Logger
}

func New(dirs []string, log zerolog.Logger) *Reader {
	return &Reader{dirs: dirs, log: log}
}

// filePaths lists supported files inside the configured directories.
// Missing directories are skipped, the lookup is not recursive.
func (r *Reader) filePaths() []string {
	var paths []string

	for _, dir := range r.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			r.log.Warn().Err(err).Str("dir", dir).Msg("skipping unreadable directory")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if _, ok := extractors[ext]; ok {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
	}

	return paths
}

// ReadAll extracts the text of every supported file found in the configured
// directories, keyed by file path. Files that cannot be read are logged and
// left out of the result.
func (r *Reader) ReadAll() map[string]string {
	contents := map[string]string{}

	for _, path := range r.filePaths() {
		r.log.Info().Str("file", path).Msg("reading resume file")

		extract := extractors[strings.ToLower(filepath.Ext(path))]
		text, err := extract(path)
		if err != nil {
			r.log.Error().Err(err).Str("file", path).Msg("failed to extract text")
			continue
		}
		contents[path] = text
	}

	return contents
}
