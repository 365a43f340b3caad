// internal/common/aws/clients.go
package aws

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	sdk "github.com/aws/aws-sdk-go-v2/aws"
)

// LoadConfig resolves credentials from the default chain for region.
func LoadConfig(ctx context.Context, region string) (sdk.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return sdk.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}

func NewSESClient(cfg sdk.Config) *ses.Client {
	return ses.NewFromConfig(cfg)
}

func NewSNSClient(cfg sdk.Config) *sns.Client {
	return sns.NewFromConfig(cfg)
}
