package awsutil

import (
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/kiteco/chatvocab/kite-golib/envutil"
	"github.com/kiteco/chatvocab/kite-golib/errors"
)

var (
	// region used to discover bucket locations
	defaultRegion = envutil.GetenvDefault("AWS_REGION", "us-west-1")
	// directory for buffered uploads, the system temp dir if empty
	bufferDir = envutil.GetenvDefault("CHATVOCAB_S3_BUFFER_DIR", "")
)

// IsS3URI returns true if the path is an s3 uri.
func IsS3URI(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// ValidateURI checks whether the given uri points to S3.
func ValidateURI(uri string) (*url.URL, error) {
	s3url, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	if s3url.Scheme != "s3" {
		return nil, errors.Errorf("%s: url is not a s3 path", s3url.String())
	}
	if s3url.Host == "" {
		return nil, errors.Errorf("%s: missing bucket", s3url.String())
	}
	return s3url, nil
}

// BucketKey splits a validated s3 url into its bucket and object key
func BucketKey(s3url *url.URL) (string, string) {
	return s3url.Host, strings.TrimPrefix(s3url.Path, "/")
}

// NewS3 creates an s3 client.
func NewS3(region string) (*s3.S3, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}

	return s3.New(sess, aws.NewConfig().WithRegion(region)), nil
}

// clientFor returns a client for the region the bucket of uri lives in
func clientFor(uri *url.URL) (*s3.S3, error) {
	region, err := objectRegion(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to determine region of %s", uri.Host)
	}
	return NewS3(region)
}

func objectRegion(uri *url.URL) (string, error) {
	client, err := NewS3(defaultRegion)
	if err != nil {
		return "", err
	}

	// Discover the region that this bucket is located in
	out, err := client.GetBucketLocation(&s3.GetBucketLocationInput{
		Bucket: aws.String(uri.Host),
	})
	if err != nil {
		return "", err
	}

	if out.LocationConstraint == nil {
		return "us-east-1", nil
	}
	return *out.LocationConstraint, nil
}

func headS3URL(s3url *url.URL) (*s3.HeadObjectOutput, error) {
	client, err := clientFor(s3url)
	if err != nil {
		return nil, err
	}

	bucket, key := BucketKey(s3url)
	return client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
}

// NewS3Reader returns a io.ReadCloser that will read the contents
// of the file pointed to by the uri. URI will be of the form
// s3://bucket-name/path/to/file
func NewS3Reader(uri string) (io.ReadCloser, error) {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := clientFor(s3url)
	if err != nil {
		return nil, err
	}

	bucket, key := BucketKey(s3url)
	out, err := client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if isNotFound(err) {
		return nil, errors.NotFoundf("%s does not exist", uri)
	}
	if err != nil {
		return nil, errors.IOFailuref(err, "error reading %s", uri)
	}
	return out.Body, nil
}

// NamedWriteCloser is a file-like object extending io.WriteCloser with a string Name() similar to os.File.Name()
type NamedWriteCloser interface {
	io.WriteCloser
	Name() string
}

type bufferedS3Writer struct {
	f     *os.File
	s3uri *url.URL
}

// Write writes to disk
func (w bufferedS3Writer) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

// Close flushes to disk, copies the written data to s3, and closes the file.
// The object only appears in s3 once the whole buffer has been uploaded.
func (w bufferedS3Writer) Close() error {
	defer os.Remove(w.f.Name()) // delete the buffer file from disk
	defer w.f.Close()           // after closing the buffer file handle

	if err := w.f.Sync(); err != nil {
		return errors.IOFailuref(err, "error flushing buffer for %s", w.Name())
	}
	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return errors.IOFailuref(err, "error rewinding buffer for %s", w.Name())
	}

	client, err := clientFor(w.s3uri)
	if err != nil {
		return err
	}

	bucket, key := BucketKey(w.s3uri)
	_, err = client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   w.f,
	})
	return errors.IOFailuref(err, "error uploading %s", w.Name())
}

// Discard drops the buffered data without uploading anything
func (w bufferedS3Writer) Discard() error {
	defer os.Remove(w.f.Name())
	return w.f.Close()
}

func (w bufferedS3Writer) Name() string {
	return w.s3uri.String()
}

// NewBufferedS3Writer returns an io.WriteCloser that will write
// to disk and upload to S3 on Close
func NewBufferedS3Writer(uri string) (NamedWriteCloser, error) {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return nil, err
	}

	if bufferDir != "" {
		if err := os.MkdirAll(bufferDir, os.ModePerm); err != nil {
			return nil, err
		}
	}
	f, err := ioutil.TempFile(bufferDir, "s3buffer")
	if err != nil {
		return nil, err
	}
	return bufferedS3Writer{f: f, s3uri: s3url}, nil
}

// S3ListObjects lists the objects in an s3 bucket with a given prefix.
// NOTE: we ignore objects with size 0 since they typically correspond
// to directories and are thus not fetchable.
func S3ListObjects(region, bucket, prefix string) ([]string, error) {
	client, err := NewS3(region)
	if err != nil {
		return nil, err
	}

	params := &s3.ListObjectsInput{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}

	var keys []string
	err = client.ListObjectsPages(params, func(p *s3.ListObjectsOutput, lastPage bool) bool {
		for _, obj := range p.Contents {
			if aws.Int64Value(obj.Size) == 0 {
				// skip size zero objects, these correspond to directories
				continue
			}
			keys = append(keys, aws.StringValue(obj.Key))
		}
		return true
	})

	if err != nil {
		return nil, errors.Wrapf(err, "error listing objects in `%s` (%s)", bucket, region)
	}
	return keys, nil
}

// ListObjects lists the objects under an s3 uri, using the region of its bucket
func ListObjects(uri string) ([]string, error) {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return nil, err
	}
	region, err := objectRegion(s3url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to determine region of %s", s3url.Host)
	}
	bucket, prefix := BucketKey(s3url)
	return S3ListObjects(region, bucket, prefix)
}

// Exists returns whether an object exists at the provided URI
func Exists(uri string) (bool, error) {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return false, err
	}
	_, err = headS3URL(s3url)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, errors.IOFailuref(err, "error checking %s", uri)
	}
}

func isNotFound(err error) bool {
	aerr, ok := err.(awserr.Error)
	if !ok {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, "NotFound":
		return true
	}
	return false
}
