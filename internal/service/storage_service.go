package service

import (
	"bytes"
	"context"
	"linguacert_backend/internal/config"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider is the durable home of generated certificates. Writes are
// keyed by filename and safe to repeat; Exists lets read paths check for a
// document without re-rendering it.
type StorageProvider interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	Exists(ctx context.Context, filename string) (bool, error)
	URL(filename string) string
}

// LocalStorageProvider 本地存储实现
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filename)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", err
	}

	return p.URL(filename), nil
}

func (p *LocalStorageProvider) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(p.Config.LocalPath, filename))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (p *LocalStorageProvider) URL(filename string) string {
	return "/certs/" + filename
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentType,
		})
	if err != nil {
		return "", err
	}
	return p.URL(filename), nil
}

func (p *MinioStorageProvider) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := p.Client.StatObject(ctx, p.Config.MinioBucket, filename, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *MinioStorageProvider) URL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

// StorageService 存储服务
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	if cfg.Storage.Type == "minio" {
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err == nil {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

func (s *StorageService) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	return s.Provider.Save(ctx, filename, data, contentType)
}

func (s *StorageService) Exists(ctx context.Context, filename string) (bool, error) {
	return s.Provider.Exists(ctx, filename)
}

func (s *StorageService) URL(filename string) string {
	return s.Provider.URL(filename)
}
