package common

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// StringValueGcpSecret retrieves a string from GCP Secret Manager.
type StringValueGcpSecret struct {
	GcpSecretName    string `json:"gcp_secret_name" yaml:"gcp_secret_name"`
	GcpProject       string `json:"gcp_project,omitempty" yaml:"gcp_project,omitempty"`
	GcpSecretVersion string `json:"gcp_secret_version,omitempty" yaml:"gcp_secret_version,omitempty"`
	CacheTTL         string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`

	cache cachedValueFetcher
}

func (sg *StringValueGcpSecret) HasValue(ctx context.Context) bool {
	return sg.GcpSecretName != ""
}

func (sg *StringValueGcpSecret) GetValue(ctx context.Context) (string, error) {
	return sg.cache.get(sg.CacheTTL, func() (string, error) {
		return sg.fetchFromGCP(ctx)
	})
}

func (sg *StringValueGcpSecret) secretVersionName() string {
	version := sg.GcpSecretVersion
	if version == "" {
		version = "latest"
	}

	// Full resource name: projects/*/secrets/*
	if strings.HasPrefix(sg.GcpSecretName, "projects/") {
		return fmt.Sprintf("%s/versions/%s", sg.GcpSecretName, version)
	}

	if sg.GcpProject == "" {
		return fmt.Sprintf("projects/-/secrets/%s/versions/%s", sg.GcpSecretName, version)
	}

	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", sg.GcpProject, sg.GcpSecretName, version)
}

func (sg *StringValueGcpSecret) fetchFromGCP(ctx context.Context) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create gcp secret manager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: sg.secretVersionName(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access gcp secret %s: %w", sg.GcpSecretName, err)
	}

	return string(result.Payload.Data), nil
}

func (sg *StringValueGcpSecret) Clone() StringValueType {
	if sg == nil {
		return nil
	}

	return &StringValueGcpSecret{
		GcpSecretName:    sg.GcpSecretName,
		GcpProject:       sg.GcpProject,
		GcpSecretVersion: sg.GcpSecretVersion,
		CacheTTL:         sg.CacheTTL,
	}
}

var _ StringValueType = (*StringValueGcpSecret)(nil)
