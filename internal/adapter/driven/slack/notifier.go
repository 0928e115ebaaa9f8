// Package slack delivers rendered charts to Slack channels.
package slack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/aws-cost-chart/internal/domain/repository"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"github.com/slack-go/slack"
)

const uploadAttempts = 2

type slackAPI interface {
	JoinConversationContext(ctx context.Context, channelID string) (*slack.Channel, string, []string, error)
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

// Notifier envia arquivos para canais do Slack usando um bot token.
type Notifier struct {
	client     slackAPI
	retryDelay time.Duration
}

// NewNotifier creates a Slack notifier for the given bot token.
func NewNotifier(token string, opts ...slack.Option) (repository.DeliveryRepository, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: slack token is required", types.ErrInvalidConfig)
	}
	return newNotifier(slack.New(token, opts...), time.Second), nil
}

func newNotifier(client slackAPI, retryDelay time.Duration) *Notifier {
	return &Notifier{client: client, retryDelay: retryDelay}
}

// PostFile entra no canal e envia o arquivo. Se o join falhar, nada é enviado.
// O upload é tentado duas vezes.
func (n *Notifier) PostFile(ctx context.Context, channelID, filePath, title string) error {
	if _, _, _, err := n.client.JoinConversationContext(ctx, channelID); err != nil {
		return fmt.Errorf("%w %s: %v", types.ErrChannelJoin, channelID, err)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", filePath, err)
	}

	params := slack.UploadFileV2Parameters{
		File:     filePath,
		FileSize: int(info.Size()),
		Filename: filepath.Base(filePath),
		Title:    title,
		Channel:  channelID,
	}

	var lastErr error
	for attempt := 1; attempt <= uploadAttempts; attempt++ {
		if _, lastErr = n.client.UploadFileV2Context(ctx, params); lastErr == nil {
			return nil
		}
		if attempt == uploadAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.retryDelay):
		}
	}

	return fmt.Errorf("%w to %s after %d attempts: %v", types.ErrUploadFailed, channelID, uploadAttempts, lastErr)
}
