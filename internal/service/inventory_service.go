package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"

	cfg "github.com/SavrnaSS/replotre/configs"
)

// InventoryService enumerates an influencer's image assets. Listings are
// re-read from the backing store on every call and sorted lexicographically
// by filename so allocation order is deterministic.
type InventoryService interface {
	Exists(ctx context.Context, influencerID string) (bool, error)
	ListImages(ctx context.Context, influencerID string) ([]string, error)
	Upload(ctx context.Context, influencerID, filename string, data []byte, contentType string) error
}

// AvailableUnconsumed filters images already attached to a non-cancelled
// scheduled row, preserving the original order.
func AvailableUnconsumed(images []string, used map[string]bool) []string {
	available := make([]string, 0, len(images))
	for _, img := range images {
		if used[img] {
			continue
		}
		available = append(available, img)
	}
	return available
}

func isImageName(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	t := filetype.GetType(ext)
	return t != types.Unknown && t.MIME.Type == "image"
}

type dirInventoryService struct {
	root string
}

// NewDirInventoryService serves assets from <root>/<influencerID>/ on local
// disk. A missing directory is zero assets, not an error.
func NewDirInventoryService(root string) InventoryService {
	return &dirInventoryService{root: root}
}

func (s *dirInventoryService) Exists(ctx context.Context, influencerID string) (bool, error) {
	info, err := os.Stat(filepath.Join(s.root, influencerID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return info.IsDir(), nil
}

func (s *dirInventoryService) ListImages(ctx context.Context, influencerID string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, influencerID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() || !isImageName(e.Name()) {
			continue
		}
		images = append(images, path.Join("/influencers", influencerID, e.Name()))
	}
	sort.Strings(images)
	return images, nil
}

func (s *dirInventoryService) Upload(ctx context.Context, influencerID, filename string, data []byte, contentType string) error {
	dir := filepath.Join(s.root, influencerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Info(err.Error())
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

type r2InventoryService struct {
	config cfg.Config
}

// NewR2InventoryService serves assets from a Cloudflare R2 bucket under the
// influencers/<influencerID>/ prefix.
func NewR2InventoryService(config cfg.Config) InventoryService {
	return &r2InventoryService{config: config}
}

func (s *r2InventoryService) client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.config.R2.AccessKey, s.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s.config.R2.AccountID))
	}), nil
}

func (s *r2InventoryService) prefix(influencerID string) string {
	return "influencers/" + influencerID + "/"
}

func (s *r2InventoryService) Exists(ctx context.Context, influencerID string) (bool, error) {
	client, err := s.client(ctx)
	if err != nil {
		return false, err
	}

	out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.config.R2.BucketName),
		Prefix:  aws.String(s.prefix(influencerID)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return len(out.Contents) > 0, nil
}

func (s *r2InventoryService) ListImages(ctx context.Context, influencerID string) ([]string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	var images []string
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.R2.BucketName),
		Prefix: aws.String(s.prefix(influencerID)),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !isImageName(path.Base(key)) {
				continue
			}
			images = append(images, "/"+key)
		}
	}
	sort.Strings(images)
	return images, nil
}

func (s *r2InventoryService) Upload(ctx context.Context, influencerID, filename string, data []byte, contentType string) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.R2.BucketName),
		Key:         aws.String(s.prefix(influencerID) + filename),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
