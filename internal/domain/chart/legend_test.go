package chart

import (
	"testing"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func set(ids ...string) map[string]struct{} {
	return lo.SliceToMap(ids, func(id string) (string, struct{}) { return id, struct{}{} })
}

func legendIDs(legend []entity.LegendEntry) []string {
	return lo.Map(legend, func(e entity.LegendEntry, _ int) string { return e.ServiceID })
}

func TestOrderLegend(t *testing.T) {
	reg := testRegistry(t)
	ranking := []string{"AmazonDynamoDB", "AmazonEC2", "AmazonS3", "AWSLambda", "zeta", "AmazonSNS", "AmazonRDS"}
	enc := Encode(reg, ranking, ranking, nil)

	legend := OrderLegend(reg, set(
		entity.OthersServiceID, "zeta", "AmazonSNS", "AmazonRDS", "AmazonDynamoDB", "AmazonS3", "AWSLambda", "AmazonEC2",
	), enc)

	assert.Equal(t, []string{
		"AmazonEC2", "AWSLambda", // Compute, by hatch index
		"AmazonS3",                    // Storage
		"AmazonDynamoDB", "AmazonRDS", // Database
		"AmazonSNS", "zeta", // uncategorized, by label ("SNS" < "zeta")
		entity.OthersServiceID,
	}, legendIDs(legend))

	last := legend[len(legend)-1]
	assert.Equal(t, "Others", last.Label)
	assert.Equal(t, reg.OthersStyle(), last.Style)
	assert.Equal(t, "Compute", legend[0].Category)
	assert.Equal(t, "EC2", legend[0].Label)
}

func TestOrderLegendExcludesServicesNotShown(t *testing.T) {
	reg := testRegistry(t)
	ranking := []string{"AmazonEC2", "AWSLambda", "AmazonS3"}
	enc := Encode(reg, ranking, ranking, nil)

	legend := OrderLegend(reg, set("AmazonS3"), enc)

	assert.Equal(t, []string{"AmazonS3"}, legendIDs(legend))
}

func TestOrderLegendSameHatchSortsByLabel(t *testing.T) {
	catalog := testCatalog()
	catalog.Hatches = []string{""}
	reg := testRegistryFrom(t, catalog)
	ranking := []string{"AmazonEC2", "AmazonECS", "AWSLambda"}
	enc := Encode(reg, ranking, ranking, nil)

	legend := OrderLegend(reg, set(ranking...), enc)

	// All share hatch index 0: EC2 < ECS < Lambda by label.
	assert.Equal(t, []string{"AmazonEC2", "AmazonECS", "AWSLambda"}, legendIDs(legend))
}
