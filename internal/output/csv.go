package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitesuae/bitesdata/internal/models"
)

// ExportCSV writes one csv file per sheet into dir and returns the paths
// written, in sheet order.
func ExportCSV(dir string, ds *models.Dataset, derived bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var paths []string
	for _, sheet := range Sheets(ds, derived) {
		path := filepath.Join(dir, strings.ToLower(sheet.Name)+".csv")
		if err := writeCSVFile(path, sheet); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVFile(path string, sheet Sheet) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(sheet.Header); err != nil {
		return fmt.Errorf("writing %s header: %w", path, err)
	}
	for _, row := range sheet.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s row: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return file.Close()
}
