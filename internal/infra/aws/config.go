package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"go-weather/configs"
)

// LoadConfig builds the AWS configuration for the queue. Static credentials
// are used when both keys are set, otherwise the default credential chain
// (environment variables, shared config, IAM roles) applies.
func LoadConfig(ctx context.Context, queue configs.QueueConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(queue.AWSRegion),
	}

	if queue.AccessKeyID != "" && queue.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(queue.AccessKeyID, queue.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}
