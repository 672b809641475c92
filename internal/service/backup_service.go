package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"pokelearn/internal/logger"
	"pokelearn/internal/models"
	"pokelearn/internal/repository"
)

// ErrInvalidBackupFormat is returned when an import document does not have the export shape
var ErrInvalidBackupFormat = errors.New("invalid backup format")

// BackupService handles export and restore of the player's data
type BackupService struct {
	collectionRepo *repository.CollectionRepository
	progressRepo   *repository.ProgressRepository
	log            *logger.Logger
	now            func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(collectionRepo *repository.CollectionRepository, progressRepo *repository.ProgressRepository, log *logger.Logger) *BackupService {
	return &BackupService{
		collectionRepo: collectionRepo,
		progressRepo:   progressRepo,
		log:            log,
		now:            time.Now,
	}
}

// SetClock replaces the time source used for exportedAt
func (s *BackupService) SetClock(now func() time.Time) {
	s.now = now
}

// ExportAllData assembles the backup document from storage
func (s *BackupService) ExportAllData(ctx context.Context) (models.ExportData, error) {
	collection, err := s.collectionRepo.GetAll(ctx)
	if err != nil {
		return models.ExportData{}, fmt.Errorf("failed to read collection: %w", err)
	}
	progress, found, err := s.progressRepo.Get(ctx)
	if err != nil {
		return models.ExportData{}, fmt.Errorf("failed to read progress: %w", err)
	}
	if !found {
		progress = models.DefaultProgress()
	}

	return models.ExportData{
		Version:    models.ExportVersion,
		ExportedAt: s.now().UnixMilli(),
		UserName:   progress.UserName,
		Collection: collection,
		Progress:   progress,
	}, nil
}

// ExportToWriter writes the backup document as indented JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	data, err := s.ExportAllData(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	s.log.Info("data exported", "pokemon", len(data.Collection), "points", data.Progress.TotalPoints)
	return nil
}

// Export writes the backup document to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	var buf bytes.Buffer
	if err := s.ExportToWriter(ctx, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// validateShape checks the top-level field types of a backup document and
// returns the decoded export timestamp
func validateShape(raw []byte) (float64, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidBackupFormat, err)
	}
	if _, ok := doc["version"].(string); !ok {
		return 0, fmt.Errorf("%w: version must be a string", ErrInvalidBackupFormat)
	}
	exportedAt, ok := doc["exportedAt"].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: exportedAt must be a number", ErrInvalidBackupFormat)
	}
	if _, ok := doc["collection"].([]any); !ok {
		return 0, fmt.Errorf("%w: collection must be an array", ErrInvalidBackupFormat)
	}
	if _, ok := doc["progress"].(map[string]any); !ok {
		return 0, fmt.Errorf("%w: progress must be an object", ErrInvalidBackupFormat)
	}
	return exportedAt, nil
}

// ImportData restores a backup document. Only the top-level shape is checked
// before anything is written; a valid one replaces the collection and the progress.
func (s *BackupService) ImportData(ctx context.Context, raw []byte) error {
	exportedAt, err := validateShape(raw)
	if err != nil {
		return err
	}

	// Fields holding a value of the wrong type are left at their zero value.
	var data models.ExportData
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(raw, &data); err != nil {
		if !errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %v", ErrInvalidBackupFormat, err)
		}
		s.log.Warn("backup has mistyped fields, importing the rest", "error", err)
	}
	data.ExportedAt = int64(exportedAt)
	s.log.Info("importing backup", "version", data.Version, "exportedAt", data.ExportedAt)

	if err := s.collectionRepo.ReplaceAll(ctx, data.Collection); err != nil {
		return fmt.Errorf("failed to restore collection: %w", err)
	}
	if err := s.progressRepo.Save(ctx, data.Progress.Clone()); err != nil {
		return fmt.Errorf("failed to restore progress: %w", err)
	}

	s.log.Info("backup imported", "pokemon", len(data.Collection))
	return nil
}

// ImportFromReader restores a backup document read from r
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	return s.ImportData(ctx, raw)
}

// Import restores a backup document from a file
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()
	return s.ImportFromReader(ctx, file)
}
