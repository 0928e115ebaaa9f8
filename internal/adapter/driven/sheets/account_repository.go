// Package sheets reads account groups from a Google Sheets range.
package sheets

import (
	"context"
	"fmt"

	"github.com/diillson/aws-cost-chart/internal/domain/accounts"
	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/diillson/aws-cost-chart/internal/domain/repository"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

type valuesReader interface {
	ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

type serviceReader struct {
	srv *gsheets.Service
}

func (r serviceReader) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := r.srv.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// AccountGroupRepository lista os grupos de contas a partir de uma planilha.
// Cada linha tem o formato: projeto, canal, conta, nome[, conta, nome...].
type AccountGroupRepository struct {
	reader        valuesReader
	spreadsheetID string
	readRange     string
}

// NewAccountGroupRepository conecta à API do Sheets. Sem credentialsFile, as
// credenciais padrão do ambiente são usadas.
func NewAccountGroupRepository(ctx context.Context, spreadsheetID, readRange, credentialsFile string) (repository.AccountGroupRepository, error) {
	if spreadsheetID == "" || readRange == "" {
		return nil, fmt.Errorf("%w: spreadsheet id and range are required", types.ErrInvalidConfig)
	}

	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsReadonlyScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating sheets client: %w", err)
	}

	return newAccountGroupRepository(serviceReader{srv: srv}, spreadsheetID, readRange), nil
}

func newAccountGroupRepository(reader valuesReader, spreadsheetID, readRange string) *AccountGroupRepository {
	return &AccountGroupRepository{reader: reader, spreadsheetID: spreadsheetID, readRange: readRange}
}

// ListGroups lê o intervalo e aplica as regras de validação de linhas.
func (r *AccountGroupRepository) ListGroups(ctx context.Context) ([]entity.AccountGroup, error) {
	values, err := r.reader.ReadRange(ctx, r.spreadsheetID, r.readRange)
	if err != nil {
		return nil, fmt.Errorf("error reading spreadsheet %s: %w", r.spreadsheetID, err)
	}

	rows := make([][]string, 0, len(values))
	for _, v := range values {
		row := make([]string, 0, len(v))
		for _, cell := range v {
			if cell == nil {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}

	return accounts.ParseRows(rows), nil
}
