package chart

import (
	"fmt"
	"testing"

	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"github.com/stretchr/testify/require"
)

func testCatalog() *types.ServiceCatalog {
	return &types.ServiceCatalog{
		Services: map[string]types.ServiceDef{
			"AmazonEC2":      {Label: "EC2", Category: "Compute"},
			"AWSLambda":      {Label: "Lambda", Category: "Compute"},
			"AmazonECS":      {Label: "ECS", Category: "Compute"},
			"AmazonS3":       {Label: "S3", Category: "Storage"},
			"AmazonEFS":      {Label: "EFS", Category: "Storage"},
			"AmazonRDS":      {Label: "RDS", Category: "Database"},
			"AmazonDynamoDB": {Label: "DynamoDB", Category: "Database"},
			"AmazonSNS":      {Label: "SNS"},
		},
		Categories: []types.CategoryDef{
			{Name: "Compute", Color: "#ff9900"},
			{Name: "Storage", Color: "#3f8624"},
			{Name: "Database", Color: "#2e73b8"},
		},
		Others: types.OthersDef{Label: "Others", Color: "#dddddd", Hatch: "--"},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(testCatalog())
	require.NoError(t, err)
	return reg
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) LogWarning(format string, a ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, a...))
}

func testRegistryFrom(t *testing.T, catalog *types.ServiceCatalog) *Registry {
	t.Helper()
	reg, err := NewRegistry(catalog)
	require.NoError(t, err)
	return reg
}
