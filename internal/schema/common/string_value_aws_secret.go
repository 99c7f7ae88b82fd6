package common

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// StringValueAwsSecret retrieves a string from AWS Secrets Manager. If AwsSecretKey is set, the secret is parsed
// as JSON and that key is extracted.
type StringValueAwsSecret struct {
	AwsSecretID  string          `json:"aws_secret_id" yaml:"aws_secret_id"`
	AwsSecretKey string          `json:"aws_secret_key,omitempty" yaml:"aws_secret_key,omitempty"`
	AwsRegion    string          `json:"aws_region,omitempty" yaml:"aws_region,omitempty"`
	Credentials  *AwsCredentials `json:"aws_credentials,omitempty" yaml:"aws_credentials,omitempty"`
	CacheTTL     string          `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`

	cache cachedValueFetcher
}

func (sa *StringValueAwsSecret) HasValue(ctx context.Context) bool {
	return sa.AwsSecretID != ""
}

func (sa *StringValueAwsSecret) GetValue(ctx context.Context) (string, error) {
	return sa.cache.get(sa.CacheTTL, func() (string, error) {
		return sa.fetchFromAWS(ctx)
	})
}

func (sa *StringValueAwsSecret) fetchFromAWS(ctx context.Context) (string, error) {
	opts := []func(*awsconfig.LoadOptions) error{}

	if sa.AwsRegion != "" {
		opts = append(opts, awsconfig.WithRegion(sa.AwsRegion))
	}

	if sa.Credentials != nil {
		credOpts, err := sa.Credentials.GetAwsConfigLoadOptions(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get aws credentials: %w", err)
		}
		opts = append(opts, credOpts...)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to load aws config: %w", err)
	}

	client := secretsmanager.NewFromConfig(cfg)

	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(sa.AwsSecretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s from AWS Secrets Manager: %w", sa.AwsSecretID, err)
	}

	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", sa.AwsSecretID)
	}

	if sa.AwsSecretKey != "" {
		return extractJsonKey(*result.SecretString, sa.AwsSecretKey)
	}

	return *result.SecretString, nil
}

func (sa *StringValueAwsSecret) Clone() StringValueType {
	if sa == nil {
		return nil
	}

	return &StringValueAwsSecret{
		AwsSecretID:  sa.AwsSecretID,
		AwsSecretKey: sa.AwsSecretKey,
		AwsRegion:    sa.AwsRegion,
		Credentials:  sa.Credentials,
		CacheTTL:     sa.CacheTTL,
	}
}

var _ StringValueType = (*StringValueAwsSecret)(nil)
