package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/reque-io/reque/internal/shared/logger"
)

// scriptName matches the shipped script layout, e.g. 00004_create_requests_tables.sql.
var scriptName = regexp.MustCompile(`^(\d{5})_[a-z0-9_]+\.sql$`)

// Generator scaffolds new migration scripts. Scripts are numbered
// sequentially rather than timestamped so the directory listing reads as the
// schema history.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.generator"),
	}
}

// CreateMigration writes an empty up/down script with the next free number.
func (g *Generator) CreateMigration(name string) (string, error) {
	if !regexp.MustCompile(`^[a-z0-9_]+$`).MatchString(name) {
		return "", fmt.Errorf("migration name must be lower_snake_case, got %q", name)
	}

	next, err := g.nextSequence()
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%05d_%s.sql", next, name)
	filePath := filepath.Join(g.scriptsPath, fileName)

	content := fmt.Sprintf("-- +goose Up\n-- SQL for %s\n\n-- +goose Down\n\n", name)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write migration script: %w", err)
	}

	g.logger.Infow("migration script created", "file", filePath)
	return filePath, nil
}

// nextSequence scans the scripts directory for the highest numbered script.
func (g *Generator) nextSequence() (int, error) {
	entries, err := os.ReadDir(g.scriptsPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read scripts directory: %w", err)
	}

	highest := 0
	for _, entry := range entries {
		m := scriptName.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}

	return highest + 1, nil
}
