package dbtest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmoiron/sqlx"
)

// MigrateFromFile выполняет все SQL-запросы из файлов.
func MigrateFromFile(db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fh, err := os.Open(fileName)
		if err != nil {
			return fmt.Errorf("os.Open: %w", err)
		}

		fileBytes, err := io.ReadAll(fh)
		if err != nil {
			return fmt.Errorf("io.ReadAll: %w", err)
		}

		if err = fh.Close(); err != nil {
			return fmt.Errorf("fh.Close: %w", err)
		}

		if _, err = db.Exec(string(fileBytes)); err != nil {
			return fmt.Errorf("db.Exec(%s): %w", filepath.Base(fileName), err)
		}
	}

	return nil
}

// UpFiles перечисляет *.up.sql из dir по возрастанию версии.
func UpFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("filepath.Glob: %w", err)
	}

	sort.Strings(files)

	return files, nil
}

// DownFiles перечисляет *.down.sql из dir по убыванию версии.
func DownFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.down.sql"))
	if err != nil {
		return nil, fmt.Errorf("filepath.Glob: %w", err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	return files, nil
}
