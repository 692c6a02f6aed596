// Package mainconfig centralizes AWS SDK initialization for the binaries
// that talk to SES.
package mainconfig

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	appconfig "github.com/mirrorfinish/detailing-platform/internal/config"
)

// LoadAWSConfig builds an AWS config from the app configuration. Static
// credentials take precedence when set; otherwise the default provider
// chain applies (instance role, env, shared config).
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretKey) != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	return config.LoadDefaultConfig(ctx, loaders...)
}
