package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"notebookrag/internal/dto"
	"notebookrag/internal/entity"
	"notebookrag/internal/pkg/logger"
	"notebookrag/internal/repository/memory"
	"notebookrag/internal/repository/specification"
	"notebookrag/internal/repository/unitofwork"
	"notebookrag/pkg/apperror"
	"notebookrag/pkg/events"
	"notebookrag/pkg/vectorstore"
)

type INotebookService interface {
	GetAll(ctx context.Context, limit, offset int) ([]*dto.GetAllNotebookResponse, error)
	Create(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowNotebookResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type notebookService struct {
	uowFactory  unitofwork.RepositoryFactory
	store       *vectorstore.Store
	transcripts *memory.TranscriptRepository
	announcer   events.Announcer
	uploadsDir  string
	log         logger.ILogger
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	store *vectorstore.Store,
	transcripts *memory.TranscriptRepository,
	announcer events.Announcer,
	uploadsDir string,
	log logger.ILogger,
) INotebookService {
	return &notebookService{
		uowFactory:  uowFactory,
		store:       store,
		transcripts: transcripts,
		announcer:   announcer,
		uploadsDir:  uploadsDir,
		log:         log,
	}
}

// GetAll lists notebooks, most recently updated first. A limit of zero
// or less returns everything.
func (c *notebookService) GetAll(ctx context.Context, limit, offset int) ([]*dto.GetAllNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}

	notebooks, err := uow.NotebookRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetAllNotebookResponse, 0, len(notebooks))
	for _, notebook := range notebooks {
		fileCount, err := uow.FileRepository().Count(ctx, specification.ByNotebookID{NotebookID: notebook.Id})
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.GetAllNotebookResponse{
			Id:        notebook.Id,
			Name:      notebook.Name,
			FileCount: int(fileCount),
			CreatedAt: notebook.CreatedAt,
			UpdatedAt: notebook.UpdatedAt,
		})
	}

	return result, nil
}

func (c *notebookService) Create(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.NotebookRepository().FindOne(ctx, specification.ByName{Name: req.Name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Validation("notebook %q already exists", req.Name)
	}

	notebook := entity.Notebook{
		Id:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return nil, err
	}

	// The collection and upload directory exist as soon as the notebook
	// does; the transaction keeps the catalog consistent when either fails.
	if _, err := c.store.CreateOrOpen(notebook.Name, false); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(c.uploadsDir, notebook.Name), 0o755); err != nil {
		return nil, apperror.IO(err, "create uploads directory for %s", notebook.Name)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.announcer.Announce(ctx, events.NotebookCreated(notebook.Name))
	c.log.Info("NotebookService", "notebook created", map[string]interface{}{
		"notebook": notebook.Name,
	})

	return &dto.CreateNotebookResponse{
		Id:   notebook.Id,
		Name: notebook.Name,
	}, nil
}

func (c *notebookService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFound("notebook %s does not exist", id)
	}

	files, err := uow.FileRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebook.Id},
		specification.OrderBy{Field: "uploaded_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	fileResponses := make([]*dto.FileResponse, 0, len(files))
	for _, file := range files {
		fileResponses = append(fileResponses, &dto.FileResponse{
			Id:               file.Id,
			OriginalFilename: file.OriginalFilename,
			StoredFilename:   file.StoredFilename,
			UploadedAt:       file.UploadedAt,
			Processed:        file.Processed,
		})
	}

	return &dto.ShowNotebookResponse{
		Id:        notebook.Id,
		Name:      notebook.Name,
		CreatedAt: notebook.CreatedAt,
		UpdatedAt: notebook.UpdatedAt,
		Files:     fileResponses,
	}, nil
}

// Delete removes the catalog rows transactionally; the vector collection,
// upload directory, and transcript are cleaned up best effort afterwards.
// The catalog is authoritative, so a failed cleanup only logs a warning.
func (c *notebookService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if notebook == nil {
		return apperror.NotFound("notebook %s does not exist", id)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.FileRepository().DeleteByNotebookId(ctx, notebook.Id); err != nil {
		return err
	}
	if err := uow.NotebookRepository().Delete(ctx, notebook.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if _, err := c.store.Delete(notebook.Name); err != nil {
		c.log.Warn("NotebookService", "failed to remove vector collection", map[string]interface{}{
			"notebook": notebook.Name,
			"error":    err.Error(),
		})
	}
	if err := os.RemoveAll(filepath.Join(c.uploadsDir, notebook.Name)); err != nil {
		c.log.Warn("NotebookService", "failed to remove uploads directory", map[string]interface{}{
			"notebook": notebook.Name,
			"error":    err.Error(),
		})
	}
	c.transcripts.Delete(notebook.Name)

	c.announcer.Announce(ctx, events.NotebookDeleted(notebook.Name))
	c.log.Info("NotebookService", "notebook deleted", map[string]interface{}{
		"notebook": notebook.Name,
	})
	return nil
}
