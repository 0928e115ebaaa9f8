package repository

import (
	"context"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
)

// ChartRenderer persists a chart model as an artifact and returns its path.
type ChartRenderer interface {
	Render(model *entity.ChartModel, outputPath string) (string, error)
	Extension() string
}

// DeliveryRepository posts a rendered artifact to a channel.
type DeliveryRepository interface {
	PostFile(ctx context.Context, channelID, filePath, title string) error
}

// ArchiveRepository keeps a copy of a rendered artifact and returns its location.
type ArchiveRepository interface {
	Archive(ctx context.Context, filePath string) (string, error)
}
