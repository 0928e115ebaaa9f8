package cli

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"github.com/spf13/cobra"
)

// lambdaOutputDir is the only writable directory in the Lambda runtime.
const lambdaOutputDir = "/tmp"

// newLambdaCommand cria o subcomando que roda como handler do AWS Lambda.
// Cada invocação processa todos os grupos com a configuração do ambiente.
func (app *CLIApp) newLambdaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda handler (configured through environment variables)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lambda.Start(func(ctx context.Context) error {
				return app.handleInvocation(ctx, cmd)
			})
			return nil
		},
	}
}

func (app *CLIApp) handleInvocation(ctx context.Context, cmd *cobra.Command) error {
	args, err := app.resolveArgs(cmd, lambdaEnv(os.LookupEnv))
	if err != nil {
		app.console.LogError("Invalid configuration: %v", err)
		return err
	}

	results, err := app.runFn(ctx, args)
	if errors.Is(err, types.ErrGroupsFailed) {
		// Falhas por grupo não voltam ao runtime: um retry reenviaria os
		// gráficos já entregues aos outros canais.
		for _, r := range results {
			if r.Err != nil {
				app.console.LogWarning("Group %s failed: %v", r.Name, r.Err)
			}
		}
		app.console.LogWarning("Run finished with errors: %v", err)
		return nil
	}
	if err != nil {
		app.console.LogError("Run finished with errors: %v", err)
		return err
	}
	app.console.LogSuccess("Delivered charts for %d group(s)", len(results))
	return nil
}

// lambdaEnv grava em /tmp quando OUTPUT_DIR não está definido.
func lambdaEnv(lookup func(string) (string, bool)) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := lookup(key)
		if key == "OUTPUT_DIR" && (!ok || v == "") {
			return lambdaOutputDir, true
		}
		return v, ok
	}
}
