package mapper

import (
	"notebookrag/internal/entity"
	"notebookrag/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}
	return &entity.File{
		Id:               f.Id,
		NotebookId:       f.NotebookId,
		OriginalFilename: f.OriginalFilename,
		StoredFilename:   f.StoredFilename,
		UploadedAt:       f.UploadedAt,
		Processed:        f.Processed,
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}
	return &model.File{
		Id:               f.Id,
		NotebookId:       f.NotebookId,
		OriginalFilename: f.OriginalFilename,
		StoredFilename:   f.StoredFilename,
		UploadedAt:       f.UploadedAt,
		Processed:        f.Processed,
	}
}

func (m *FileMapper) ToEntities(files []*model.File) []*entity.File {
	entities := make([]*entity.File, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
