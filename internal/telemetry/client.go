package telemetry

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/connect"
	"github.com/rs/zerolog"
)

// ConnectAPI is the slice of the Amazon Connect client the collector
// needs. *connect.Client satisfies it; tests substitute a fake.
type ConnectAPI interface {
	DescribeQueue(ctx context.Context, params *connect.DescribeQueueInput, optFns ...func(*connect.Options)) (*connect.DescribeQueueOutput, error)
	GetMetricDataV2(ctx context.Context, params *connect.GetMetricDataV2Input, optFns ...func(*connect.Options)) (*connect.GetMetricDataV2Output, error)
}

// NewConnectClient builds an Amazon Connect client from the ambient
// AWS configuration (environment, shared config, instance role).
func NewConnectClient(ctx context.Context, region string, logger zerolog.Logger) (*connect.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info().Str("region", region).Msg("Connect client initialized")
	return connect.NewFromConfig(awsCfg), nil
}
