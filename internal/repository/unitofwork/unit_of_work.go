package unitofwork

import (
	"context"

	"notebookrag/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NotebookRepository() contract.NotebookRepository
	FileRepository() contract.FileRepository
}
