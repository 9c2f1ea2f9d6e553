package source

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// FileSource reads one domain per line from a plain text file. Blank lines
// and lines starting with '#' are skipped; everything else passes through
// in file order, duplicates included.
type FileSource struct {
	path   string
	logger zerolog.Logger
}

func NewFileSource(path string, logger zerolog.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

func (s *FileSource) Domains(_ context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open domain list %s: %w", s.path, err)
	}
	defer f.Close()

	var domains []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		domains = append(domains, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read domain list %s: %w", s.path, err)
	}

	s.logger.Debug().Int("count", len(domains)).Str("path", s.path).Msg("Loaded domain list from file")
	return domains, nil
}
