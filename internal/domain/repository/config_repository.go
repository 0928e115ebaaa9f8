package repository

import (
	"github.com/diillson/aws-cost-chart/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadServiceCatalog(filePath string) (*types.ServiceCatalog, error)
}
