// Package questionbank loads question collections from YAML documents. It
// stands in for the external question store when the engine runs outside
// the web application, e.g. from the CLI.
package questionbank

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/qiyas-prep/smartsearch/internal/domain"
)

// Bank is the on-disk question bank document.
type Bank struct {
	// Version identifies the document schema.
	Version string `yaml:"version" validate:"required"`
	// Questions is the question collection.
	Questions []domain.Question `yaml:"questions"`
}

// Loader parses and validates question banks and caches the parsed result
// by content hash. It is safe for concurrent use.
type Loader struct {
	validator *validator.Validate
	// cache maps the SHA-256 of the document to its parsed questions.
	// Cached slices are never handed out directly.
	cache   map[string][]domain.Question
	cacheMu sync.RWMutex
	// sf collapses concurrent loads of the same document.
	sf singleflight.Group
}

// NewLoader creates a Loader with an empty cache.
func NewLoader() *Loader {
	return &Loader{
		validator: validator.New(),
		cache:     make(map[string][]domain.Question),
	}
}

// LoadFromFile loads a question bank from a YAML file.
func (l *Loader) LoadFromFile(ctx context.Context, path string) ([]domain.Question, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return l.load(ctx, data)
}

// LoadFromReader loads a question bank from r.
func (l *Loader) LoadFromReader(ctx context.Context, r io.Reader) ([]domain.Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return l.load(ctx, data)
}

// load returns a copy of the parsed questions for data.
func (l *Loader) load(ctx context.Context, data []byte) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	v, err, _ := l.sf.Do(hash, func() (any, error) {
		if qs, ok := l.cached(hash); ok {
			return qs, nil
		}

		qs, err := l.parse(data)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[hash] = qs
		l.cacheMu.Unlock()
		return qs, nil
	})
	if err != nil {
		return nil, err
	}

	return cloneQuestions(v.([]domain.Question)), nil
}

func (l *Loader) cached(hash string) ([]domain.Question, bool) {
	l.cacheMu.RLock()
	defer l.cacheMu.RUnlock()
	qs, ok := l.cache[hash]
	return qs, ok
}

// parse decodes the document strictly and validates every question.
// All question failures are reported together.
func (l *Loader) parse(data []byte) ([]domain.Question, error) {
	var bank Bank
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&bank); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyBank
		}
		return nil, fmt.Errorf("failed to parse question bank (check for typos): %w", err)
	}

	if err := l.validator.Struct(bank); err != nil {
		return nil, fmt.Errorf("question bank validation failed: %w", err)
	}
	if len(bank.Questions) == 0 {
		return nil, domain.ErrEmptyBank
	}

	verr := domain.NewValidationError("question bank")
	seen := make(map[int]struct{}, len(bank.Questions))
	for i, q := range bank.Questions {
		if err := l.validator.Struct(q); err != nil {
			verr.AddError(fmt.Sprintf("question #%d (id %d): %v", i, q.ID, err))
			continue
		}
		if err := q.CheckOptions(); err != nil {
			verr.AddError(err.Error())
			continue
		}
		if _, dup := seen[q.ID]; dup {
			verr.AddError(fmt.Sprintf("%v: %d", domain.ErrDuplicateQuestion, q.ID))
			continue
		}
		seen[q.ID] = struct{}{}
	}
	if verr.HasErrors() {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidQuestion, verr)
	}

	return bank.Questions, nil
}

func cloneQuestions(qs []domain.Question) []domain.Question {
	out := make([]domain.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
