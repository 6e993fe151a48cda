package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"voyago/internal/models/catalog_models"
	"voyago/pkg/utils"
)

type CatalogServiceInterface interface {
	// Load fetches the catalog exactly once per process. A failed fetch is
	// not retried; the wizard stays in its loading state.
	Load(ctx context.Context) error
	Get(ctx context.Context) (catalog_models.Catalog, error)
}

type CatalogService struct {
	url        string
	httpClient *http.Client

	once sync.Once
	mu   sync.RWMutex

	catalog catalog_models.Catalog
	loaded  bool
}

func NewCatalogService(url string) CatalogServiceInterface {
	return &CatalogService{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

func (s *CatalogService) Load(ctx context.Context) error {
	var loadErr error
	s.once.Do(func() {
		loadErr = s.fetch(ctx)
	})
	return loadErr
}

func (s *CatalogService) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Error fetching question catalog: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Question catalog fetch returned %d", resp.StatusCode)
		return fmt.Errorf("catalog fetch returned %d", resp.StatusCode)
	}

	var catalog catalog_models.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		log.Printf("Error decoding question catalog: %v", err)
		return err
	}

	warnDuplicateOptions(catalog)

	s.mu.Lock()
	s.catalog = catalog
	s.loaded = true
	s.mu.Unlock()

	log.Printf("Loaded question catalog with %d questions", len(catalog))
	return nil
}

func (s *CatalogService) Get(ctx context.Context) (catalog_models.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, utils.ErrCatalogNotReady
	}
	return s.catalog, nil
}

// Option values must be unique within a question; the catalog is external
// data, so violations are logged rather than rejected.
func warnDuplicateOptions(catalog catalog_models.Catalog) {
	for _, q := range catalog {
		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if seen[opt.Value] {
				log.Printf("Question %s has duplicate option value %q", q.ID, opt.Value)
			}
			seen[opt.Value] = true
		}
	}
}
