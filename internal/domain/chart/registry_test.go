package chart

import (
	"testing"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg := testRegistry(t)

	assert.Equal(t, []string{"Compute", "Storage", "Database"}, reg.Categories())
	assert.Equal(t, DefaultHatches, reg.Hatches())

	cat, ok := reg.Category("AmazonS3")
	assert.True(t, ok)
	assert.Equal(t, "Storage", cat)

	_, ok = reg.Category("AmazonSNS")
	assert.False(t, ok, "a service without category is uncategorized")
	_, ok = reg.Category("AmazonUnknown")
	assert.False(t, ok)

	assert.Equal(t, "EC2", reg.Label("AmazonEC2"))
	assert.Equal(t, "AmazonUnknown", reg.Label("AmazonUnknown"))
	assert.Equal(t, "Others", reg.Label(entity.OthersServiceID))

	others := reg.OthersStyle()
	assert.Equal(t, "#dddddd", others.Color.Hex())
	assert.Equal(t, "--", others.Hatch)
	assert.Equal(t, -1, others.HatchIndex)
}

func TestNewRegistryDefaultsLabelToID(t *testing.T) {
	catalog := testCatalog()
	catalog.Services["AmazonMQ"] = types.ServiceDef{Category: "Compute"}

	reg, err := NewRegistry(catalog)
	require.NoError(t, err)
	assert.Equal(t, "AmazonMQ", reg.Label("AmazonMQ"))
}

func TestNewRegistryCustomHatches(t *testing.T) {
	catalog := testCatalog()
	catalog.Hatches = []string{"", "//"}

	reg, err := NewRegistry(catalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "//"}, reg.Hatches())
}

func TestNewRegistryErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *types.ServiceCatalog)
	}{
		{"invalid category color", func(c *types.ServiceCatalog) { c.Categories[0].Color = "orange" }},
		{"unnamed category", func(c *types.ServiceCatalog) { c.Categories[1].Name = "" }},
		{"duplicate category", func(c *types.ServiceCatalog) {
			c.Categories = append(c.Categories, types.CategoryDef{Name: "Compute", Color: "#000000"})
		}},
		{"unknown category", func(c *types.ServiceCatalog) {
			c.Services["AmazonMQ"] = types.ServiceDef{Label: "MQ", Category: "Messaging"}
		}},
		{"reserved service id", func(c *types.ServiceCatalog) {
			c.Services[entity.OthersServiceID] = types.ServiceDef{Label: "x"}
		}},
		{"missing others label", func(c *types.ServiceCatalog) { c.Others.Label = "" }},
		{"invalid others color", func(c *types.ServiceCatalog) { c.Others.Color = "#12345" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := testCatalog()
			tt.mutate(catalog)
			_, err := NewRegistry(catalog)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidCatalog)
		})
	}

	_, err := NewRegistry(nil)
	assert.ErrorIs(t, err, types.ErrInvalidCatalog)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF9900")
	require.NoError(t, err)
	assert.Equal(t, entity.Color{R: 0xff, G: 0x99, B: 0x00}, c)
	assert.Equal(t, "#ff9900", c.Hex())

	for _, bad := range []string{"", "ff9900", "#ff99", "#gg0000", "#ff99000"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
