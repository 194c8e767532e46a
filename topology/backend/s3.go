// Copyright 2025 Redpanda Data, Inc.
//
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package backend

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

const (
	defaultS3Region = "us-east-1"
	// DefaultS3Key is the object key used when none is configured.
	DefaultS3Key = "topology-builder/cluster-state.json"
)

// s3Objects is the subset of the S3 API the backend uses.
type s3Objects interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Backend stores the state as a single S3 object. Credentials come from
// the default AWS provider chain.
type S3Backend struct {
	svc    s3Objects
	bucket string
	key    string
}

var _ Backend = (*S3Backend)(nil)

// NewS3Backend creates a backend storing the state in bucket/key.
func NewS3Backend(region, bucket, key string) (*S3Backend, error) {
	if bucket == "" {
		return nil, errors.New("s3.bucket is required by the s3 state backend")
	}
	if region == "" {
		region = defaultS3Region
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS session")
	}
	return newS3Backend(s3.New(sess), bucket, key), nil
}

func newS3Backend(svc s3Objects, bucket, key string) *S3Backend {
	if key == "" {
		key = DefaultS3Key
	}
	return &S3Backend{svc: svc, bucket: bucket, key: key}
}

func isNoSuchKey(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey
}

// Load implements Backend.
func (b *S3Backend) Load(ctx context.Context) (*State, error) {
	out, err := b.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if isNoSuchKey(err) {
		return NewState(nil, nil), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get object s3://%s/%s", b.bucket, b.key)
	}
	defer out.Body.Close()
	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read object s3://%s/%s", b.bucket, b.key)
	}
	state, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "object s3://%s/%s", b.bucket, b.key)
	}
	return state, nil
}

// Save implements Backend.
func (b *S3Backend) Save(ctx context.Context, state *State) error {
	raw, err := encode(state)
	if err != nil {
		return err
	}
	_, err = b.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to put object s3://%s/%s", b.bucket, b.key)
	}
	return nil
}

// Close implements Backend.
func (*S3Backend) Close() error { return nil }
