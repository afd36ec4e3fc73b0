package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"notebookrag/internal/dto"
	"notebookrag/internal/entity"
	"notebookrag/internal/pkg/logger"
	"notebookrag/internal/repository/specification"
	"notebookrag/internal/repository/unitofwork"
	"notebookrag/pkg/apperror"
	"notebookrag/pkg/embedding"
	"notebookrag/pkg/events"
	"notebookrag/pkg/extract"
	"notebookrag/pkg/textsplit"
	"notebookrag/pkg/vectorstore"
)

type IDocumentService interface {
	Upload(ctx context.Context, notebookId uuid.UUID, files []*multipart.FileHeader) (*dto.UploadFilesResponse, error)
	ProcessFiles(ctx context.Context, notebookId uuid.UUID) (*dto.ProcessFilesResponse, error)
	ProcessFile(ctx context.Context, fileId uuid.UUID) error
	ListFiles(ctx context.Context, notebookId uuid.UUID) ([]*dto.FileResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	store            *vectorstore.Store
	embedder         embedding.Provider
	splitter         *textsplit.Splitter
	publisherService IPublisherService
	announcer        events.Announcer
	uploadsDir       string
	log              logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	store *vectorstore.Store,
	embedder embedding.Provider,
	splitter *textsplit.Splitter,
	publisherService IPublisherService,
	announcer events.Announcer,
	uploadsDir string,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		store:            store,
		embedder:         embedder,
		splitter:         splitter,
		publisherService: publisherService,
		announcer:        announcer,
		uploadsDir:       uploadsDir,
		log:              log,
	}
}

// storedFilename builds a collision-free name that still reveals upload
// time and original extension when listing the directory.
func storedFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	return fmt.Sprintf("%s_%s%s",
		time.Now().Format("20060102150405"),
		uuid.NewString()[:8],
		ext,
	)
}

// Upload saves the files into the notebook's upload directory, records
// them unprocessed in the catalog, and queues one processing message per
// file. Unsupported extensions are rejected before anything is written.
func (s *documentService) Upload(ctx context.Context, notebookId uuid.UUID, files []*multipart.FileHeader) (*dto.UploadFilesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFound("notebook %s does not exist", notebookId)
	}

	if len(files) == 0 {
		return nil, apperror.Validation("no files in upload request")
	}
	for _, header := range files {
		switch extract.KindOf(header.Filename) {
		case extract.KindPDF, extract.KindText, extract.KindMarkdown:
		default:
			return nil, apperror.Validation("unsupported file extension: %s", filepath.Ext(header.Filename))
		}
	}

	dir := filepath.Join(s.uploadsDir, notebook.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.IO(err, "create uploads directory for %s", notebook.Name)
	}

	uploaded := make([]*dto.FileResponse, 0, len(files))
	for _, header := range files {
		stored := storedFilename(header.Filename)
		if err := saveUpload(header, filepath.Join(dir, stored)); err != nil {
			return nil, err
		}

		file := entity.File{
			Id:               uuid.New(),
			NotebookId:       notebook.Id,
			OriginalFilename: header.Filename,
			StoredFilename:   stored,
			UploadedAt:       time.Now(),
		}
		if err := uow.FileRepository().Create(ctx, &file); err != nil {
			return nil, err
		}

		payload, _ := json.Marshal(dto.PublishProcessFileMessage{FileId: file.Id})
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			return nil, err
		}

		uploaded = append(uploaded, &dto.FileResponse{
			Id:               file.Id,
			OriginalFilename: file.OriginalFilename,
			StoredFilename:   file.StoredFilename,
			UploadedAt:       file.UploadedAt,
			Processed:        file.Processed,
		})
	}

	s.log.Info("DocumentService", "files uploaded", map[string]interface{}{
		"notebook": notebook.Name,
		"count":    len(uploaded),
	})

	return &dto.UploadFilesResponse{Uploaded: uploaded}, nil
}

func saveUpload(header *multipart.FileHeader, destination string) error {
	src, err := header.Open()
	if err != nil {
		return apperror.IO(err, "open uploaded file %s", header.Filename)
	}
	defer src.Close()

	dst, err := os.Create(destination)
	if err != nil {
		return apperror.IO(err, "create %s", destination)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return apperror.IO(err, "write %s", destination)
	}
	return nil
}

// ProcessFiles ingests every unprocessed file of a notebook synchronously.
// One file's failure is recorded and never aborts its siblings.
func (s *documentService) ProcessFiles(ctx context.Context, notebookId uuid.UUID) (*dto.ProcessFilesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFound("notebook %s does not exist", notebookId)
	}

	files, err := uow.FileRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebook.Id},
		specification.Unprocessed{},
		specification.OrderBy{Field: "uploaded_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := &dto.ProcessFilesResponse{Failures: make([]*dto.FileFailure, 0)}
	for _, file := range files {
		if err := s.ingest(ctx, uow, notebook.Name, file); err != nil {
			s.log.Error("DocumentService", "failed to process file", map[string]interface{}{
				"notebook": notebook.Name,
				"file":     file.OriginalFilename,
				"error":    err.Error(),
			})
			response.Failures = append(response.Failures, &dto.FileFailure{
				OriginalFilename: file.OriginalFilename,
				Reason:           err.Error(),
			})
			continue
		}
		response.Processed++
	}

	return response, nil
}

// ProcessFile ingests a single file by id. Used by the consumer worker;
// already-processed files are skipped so redelivery is harmless.
func (s *documentService) ProcessFile(ctx context.Context, fileId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	file, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: fileId})
	if err != nil {
		return err
	}
	if file == nil {
		return apperror.NotFound("file %s does not exist", fileId)
	}
	if file.Processed {
		return nil
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: file.NotebookId})
	if err != nil {
		return err
	}
	if notebook == nil {
		return apperror.NotFound("notebook %s does not exist", file.NotebookId)
	}

	return s.ingest(ctx, uow, notebook.Name, file)
}

// ingest runs the pipeline for one file: extract, chunk, embed, index,
// mark processed. The chunk metadata carries the original filename so
// answers can be traced back to their source document.
func (s *documentService) ingest(ctx context.Context, uow unitofwork.UnitOfWork, notebookName string, file *entity.File) error {
	path := filepath.Join(s.uploadsDir, notebookName, file.StoredFilename)

	text, err := extract.Text(path, extract.KindOf(file.OriginalFilename))
	if err != nil {
		return err
	}

	chunks := s.splitter.Split(text)
	if len(chunks) > 0 {
		embeddings, err := s.embedder.EmbedDocuments(ctx, chunks)
		if err != nil {
			return err
		}

		collection, err := s.store.CreateOrOpen(notebookName, false)
		if err != nil {
			return err
		}

		metadatas := make([]vectorstore.Metadata, len(chunks))
		for i := range metadatas {
			metadatas[i] = vectorstore.Metadata{Source: file.OriginalFilename}
		}
		if err := collection.Insert(ctx, chunks, embeddings, metadatas); err != nil {
			return err
		}
	}

	file.Processed = true
	if err := uow.FileRepository().Update(ctx, file); err != nil {
		return err
	}

	s.announcer.Announce(ctx, events.FileProcessed(notebookName, file.OriginalFilename, len(chunks)))
	s.log.Info("DocumentService", "file processed", map[string]interface{}{
		"notebook": notebookName,
		"file":     file.OriginalFilename,
		"chunks":   len(chunks),
	})
	return nil
}

func (s *documentService) ListFiles(ctx context.Context, notebookId uuid.UUID) ([]*dto.FileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFound("notebook %s does not exist", notebookId)
	}

	files, err := uow.FileRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebook.Id},
		specification.OrderBy{Field: "uploaded_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FileResponse, 0, len(files))
	for _, file := range files {
		result = append(result, &dto.FileResponse{
			Id:               file.Id,
			OriginalFilename: file.OriginalFilename,
			StoredFilename:   file.StoredFilename,
			UploadedAt:       file.UploadedAt,
			Processed:        file.Processed,
		})
	}
	return result, nil
}
