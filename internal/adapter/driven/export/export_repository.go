package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// ExportToCSV writes the header and every record as RFC 4180 CSV.
func (r *ExportRepositoryImpl) ExportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv", r.now())
	if err != nil {
		return "", err
	}

	err = writeAtomically(outputFilename, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(report.Header); err != nil {
			return fmt.Errorf("error writing CSV header: %w", err)
		}
		for _, record := range report.Records {
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("error writing CSV row: %w", err)
			}
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json", r.now())
	if err != nil {
		return "", err
	}

	err = writeAtomically(outputFilename, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("error encoding JSON data: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf", r.now())
	if err != nil {
		return "", err
	}

	pdf := renderPDF(report)
	err = writeAtomically(outputFilename, func(w io.Writer) error {
		return pdf.Output(w)
	})
	if err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string, now time.Time) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := now.Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// writeAtomically writes into an exclusively created temp file next to path and
// renames it into place only after everything was written and synced. Readers
// never observe a partial report, and a failed write leaves nothing behind.
func writeAtomically(path string, write func(io.Writer) error) (err error) {
	if _, statErr := os.Lstat(path); statErr == nil {
		return fmt.Errorf("refusing to overwrite %s: %w", path, os.ErrExist)
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return statErr
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
