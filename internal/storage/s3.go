package storage

import (
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Store uploads files to an S3 bucket and returns the object URL.
type S3Store struct {
	Bucket   string
	uploader *s3manager.Uploader
}

func NewS3Store(accessKey, secretKey, region, bucket string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return &S3Store{Bucket: bucket, uploader: s3manager.NewUploader(sess)}, nil
}

func (s *S3Store) Save(key, contentType string, r io.Reader) (string, error) {
	out, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", err
	}
	return out.Location, nil
}
