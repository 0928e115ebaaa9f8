package config

import (
	"context"
	"fmt"

	"github.com/diillson/aws-cost-chart/internal/domain/accounts"
	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/diillson/aws-cost-chart/internal/domain/repository"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
)

// FileAccountGroupRepository lê os grupos de contas de um arquivo local
// em vez da planilha. As mesmas regras de validação se aplicam.
type FileAccountGroupRepository struct {
	path string
}

// NewFileAccountGroupRepository cria um repositório de grupos baseado em arquivo.
func NewFileAccountGroupRepository(path string) repository.AccountGroupRepository {
	return &FileAccountGroupRepository{path: path}
}

// ListGroups decodifica o arquivo e filtra grupos e contas inválidos.
func (r *FileAccountGroupRepository) ListGroups(_ context.Context) ([]entity.AccountGroup, error) {
	var file types.GroupsFile
	if err := decodeFile(r.path, &file); err != nil {
		return nil, fmt.Errorf("error loading groups file: %w", err)
	}

	rows := make([][]string, 0, len(file.Groups))
	for _, g := range file.Groups {
		row := []string{g.Name, g.TargetChannel}
		for _, a := range g.Accounts {
			row = append(row, a.ID, a.Name)
		}
		rows = append(rows, row)
	}
	return accounts.ParseRows(rows), nil
}
