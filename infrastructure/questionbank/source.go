package questionbank

import (
	"context"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/ports"
)

var (
	_ ports.QuestionSource = (*FileSource)(nil)
	_ ports.QuestionSource = StaticSource(nil)
)

// FileSource serves the questions of one bank file. The file is re-read on
// every call; unchanged content is answered from the loader cache.
type FileSource struct {
	loader *Loader
	path   string
}

// NewFileSource returns a source for the bank at path. A nil loader gets
// a private one.
func NewFileSource(loader *Loader, path string) *FileSource {
	if loader == nil {
		loader = NewLoader()
	}
	return &FileSource{loader: loader, path: path}
}

// Questions implements ports.QuestionSource.
func (s *FileSource) Questions(ctx context.Context) ([]domain.Question, error) {
	return s.loader.LoadFromFile(ctx, s.path)
}

// StaticSource serves a fixed in-memory collection.
type StaticSource []domain.Question

// Questions implements ports.QuestionSource.
func (s StaticSource) Questions(context.Context) ([]domain.Question, error) {
	return cloneQuestions(s), nil
}
