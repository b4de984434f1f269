package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-pos-terminal/pkg/backup"
	"go-pos-terminal/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrBackupUnsupported = errors.New("backup and restore need the sqlite driver")

type BackupService interface {
	Backup(ctx context.Context, filename string) (*backup.Result, error)
	// Locate resolves a backup filename and checks that it exists
	Locate(filename string) (string, error)
	// Restore closes the database before overwriting it; the caller must reconnect
	Restore(ctx context.Context, filename string) (*backup.Result, error)
}

type backupService struct {
	db     *gorm.DB
	dbPath string
	dir    string
	log    *zap.Logger
}

func NewBackupService(db *gorm.DB, dbPath, dir string, log *zap.Logger) BackupService {
	return &backupService{db: db, dbPath: dbPath, dir: dir, log: log.Named("backup")}
}

// resolve puts bare filenames under the backup directory
func (s *backupService) resolve(filename string) (string, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return "", fmt.Errorf("%w: backup filename is required", ErrValidation)
	}
	if filepath.IsAbs(filename) || strings.ContainsRune(filename, filepath.Separator) || s.dir == "" {
		return filename, nil
	}
	return filepath.Join(s.dir, filename), nil
}

func (s *backupService) supported() error {
	if s.db.Dialector.Name() != database.DriverSQLite {
		return ErrBackupUnsupported
	}
	return nil
}

func (s *backupService) Backup(ctx context.Context, filename string) (*backup.Result, error) {
	if err := s.supported(); err != nil {
		return nil, err
	}
	dst, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}

	res, err := backup.Copy(s.dbPath, dst)
	if err != nil {
		return nil, err
	}
	s.log.Info("database backed up", zap.String("path", res.Path), zap.Int64("bytes", res.Bytes), zap.String("blake2b", res.Checksum))
	return res, nil
}

func (s *backupService) Locate(filename string) (string, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", backup.ErrSourceMissing, path)
	}
	return path, nil
}

func (s *backupService) Restore(ctx context.Context, filename string) (*backup.Result, error) {
	if err := s.supported(); err != nil {
		return nil, err
	}
	src, err := s.Locate(filename)
	if err != nil {
		return nil, err
	}

	if err := database.Close(s.db); err != nil {
		return nil, err
	}
	res, err := backup.Copy(src, s.dbPath)
	if err != nil {
		return nil, err
	}
	s.log.Info("database restored", zap.String("from", src), zap.Int64("bytes", res.Bytes), zap.String("blake2b", res.Checksum))
	return res, nil
}
