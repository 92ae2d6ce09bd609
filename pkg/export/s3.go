package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ManifestKey is the object key of the export manifest in the bucket.
const ManifestKey = "manifest.json"

// S3API is the part of the S3 client the exporter uses.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the aws-s3 export target.
type S3Options struct {
	// Bucket is the destination bucket. Required.
	Bucket string

	// Workspaces optionally restricts which workspaces are exported.
	Workspaces []string

	// Key optionally decrypts encrypted entries. Without it they are
	// skipped.
	Key []byte

	// DryRun reports what would be uploaded without uploading.
	DryRun bool
}

// manifest tracks the digest of every exported entry so unchanged entries
// are skipped on the next export. It lives in the bucket next to the
// entries.
type manifest struct {
	Files map[string]string `json:"files"`
}

// S3Exporter uploads workspace plaintext to an S3 bucket.
type S3Exporter struct {
	client S3API
}

// NewS3Exporter wraps an S3 client.
func NewS3Exporter(client S3API) *S3Exporter {
	return &S3Exporter{client: client}
}

// NewS3Client builds an S3 client from the ambient AWS configuration
// (environment, shared config, instance role).
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: failed to load AWS configuration: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Export uploads the selected workspaces' plaintext to the bucket. Entries
// whose digest matches the bucket manifest are skipped; the manifest is
// rewritten only when it changed.
func (e *S3Exporter) Export(ctx context.Context, src Source, opts S3Options) (Result, error) {
	var res Result

	if opts.Bucket == "" {
		return res, errors.New("export: no S3 bucket configured")
	}

	workspaces, err := selectWorkspaces(src, opts.Workspaces)
	if err != nil {
		return res, err
	}

	old, err := e.getManifest(ctx, opts.Bucket)
	if err != nil {
		return res, err
	}
	next := manifest{Files: map[string]string{}}
	for k, v := range old.Files {
		next.Files[k] = v
	}

	for _, ws := range workspaces {
		entries, err := src.Entries(ws)
		if err != nil {
			return res, err
		}

		for entry := range entries {
			name := ws + "/" + entry.Name()

			plaintext, ok, err := readEntry(src, entry, opts.Key)
			if err != nil {
				return res, err
			}
			if !ok {
				res.Skipped = append(res.Skipped, name)
				continue
			}

			d := digest(plaintext)
			if old.Files[name] == d {
				res.Skipped = append(res.Skipped, name)
				continue
			}
			next.Files[name] = d

			if !opts.DryRun {
				if err := e.put(ctx, opts.Bucket, name, plaintext); err != nil {
					return res, err
				}
			}
			res.Exported = append(res.Exported, name)
		}
	}

	if err := e.putManifest(ctx, opts.Bucket, opts.DryRun, old, next); err != nil {
		return res, err
	}

	return res, nil
}

func (e *S3Exporter) put(ctx context.Context, bucket, key string, body []byte) error {
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(bucket),
		Key:               aws.String(key),
		Body:              bytes.NewReader(body),
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
	})
	if err != nil {
		return fmt.Errorf("export: failed to upload %s to bucket %s: %w", key, bucket, err)
	}
	return nil
}

func (e *S3Exporter) getManifest(ctx context.Context, bucket string) (manifest, error) {
	m := manifest{Files: map[string]string{}}

	out, err := e.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(ManifestKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return m, nil
		}
		return m, fmt.Errorf("export: failed to get manifest from bucket %s: %w", bucket, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return m, fmt.Errorf("export: failed to read manifest: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("export: failed to parse manifest: %w", err)
	}
	if m.Files == nil {
		m.Files = map[string]string{}
	}
	return m, nil
}

func (e *S3Exporter) putManifest(ctx context.Context, bucket string, dryRun bool, old, next manifest) error {
	oldJSON, err := json.Marshal(old)
	if err != nil {
		return fmt.Errorf("export: failed to encode manifest: %w", err)
	}
	nextJSON, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("export: failed to encode manifest: %w", err)
	}
	if bytes.Equal(oldJSON, nextJSON) || dryRun {
		return nil
	}

	if err := e.put(ctx, bucket, ManifestKey, nextJSON); err != nil {
		return err
	}
	return nil
}

// digest returns the hex SHA-256 of data, the manifest's change detector.
func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
