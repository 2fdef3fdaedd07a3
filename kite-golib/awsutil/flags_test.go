package awsutil

import "flag"

// Some tests in this package rely on having a network connection and credentials for
// AWS so should not be part of the CI process. Run "go test -aws" to include them.

var (
	awsTests bool
	testURI  string
)

func init() {
	flag.BoolVar(&awsTests, "aws", false, "run tests that rely on AWS connectivity and credentials")
	flag.StringVar(&testURI, "aws-uri", "s3://kite-data/experiments/testdata/abc.txt", "existing object read by the -aws tests")
}
