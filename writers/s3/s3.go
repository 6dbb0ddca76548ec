package s3

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/utils/logger"
	"github.com/spf13/afero"
)

// ObjectKey is where a local output file lands under the configured prefix.
func ObjectKey(config *types.S3Config, localPath string) string {
	return path.Join(config.Prefix, filepath.Base(localPath))
}

func newSession(config *types.S3Config) (*session.Session, error) {
	awsConfig := aws.Config{
		Region: aws.String(config.Region),
	}
	if config.AccessKey != "" && config.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}

	sess, err := session.NewSession(&awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %s", err)
	}
	return sess, nil
}

// Upload copies the written output file to the configured bucket and
// returns its s3:// location.
func Upload(ctx context.Context, fs afero.Fs, config *types.S3Config, localPath string) (string, error) {
	sess, err := newSession(config)
	if err != nil {
		return "", err
	}

	file, err := fs.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %s", localPath, err)
	}
	defer file.Close()

	key := ObjectKey(config, localPath)
	_, err = s3manager.NewUploader(sess).UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(config.Bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %s", err)
	}

	location := fmt.Sprintf("s3://%s/%s", config.Bucket, key)
	logger.Infof("uploaded %s to %s", localPath, location)
	return location, nil
}
