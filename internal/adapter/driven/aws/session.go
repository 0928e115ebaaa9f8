package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// DefaultRegion is used when neither the flag nor the environment sets one.
const DefaultRegion = "ap-northeast-1"

// Session guarda a configuração AWS compartilhada pelos repositórios.
type Session struct {
	cfg aws.Config
}

// NewSession carrega a configuração padrão do SDK, opcionalmente com um
// perfil e uma região específicos.
func NewSession(ctx context.Context, profile, region string) (*Session, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		if profile != "" {
			return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
		}
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	return &Session{cfg: cfg}, nil
}

// Config returns a copy of the SDK configuration.
func (s *Session) Config() aws.Config {
	return s.cfg.Copy()
}

// CallerAccount returns the account id of the loaded credentials.
func (s *Session) CallerAccount(ctx context.Context) (string, error) {
	client := sts.NewFromConfig(s.cfg)
	result, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity: %w", err)
	}
	return aws.ToString(result.Account), nil
}
