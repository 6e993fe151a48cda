package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"voyago/internal/models/catalog_models"
	"voyago/internal/models/db_models"
	"voyago/pkg/utils"
)

// The whole saved list lives under this one storage key, newest first.
const itinerariesStorageKey = "vc_itineraries_v1"

// SavedItineraryRepository persists itinerary snapshots as one JSON blob.
// Every operation reads, modifies and rewrites the full list; there is no
// partial update and no merge, so concurrent writers are last-write-wins.
// Reads never fail: any storage or parse problem reads as an empty list.
type SavedItineraryRepository interface {
	List(ctx context.Context) []catalog_models.SavedItinerary
	Get(ctx context.Context, id string) *catalog_models.SavedItinerary
	Save(ctx context.Context, item catalog_models.SavedItinerary) error
	Remove(ctx context.Context, id string) error
}

type savedItineraryRepository struct {
	db *gorm.DB
}

func NewSavedItineraryRepository(db *gorm.DB) SavedItineraryRepository {
	return &savedItineraryRepository{db: db}
}

func (r *savedItineraryRepository) List(ctx context.Context) []catalog_models.SavedItinerary {
	var blob db_models.StorageBlob
	err := r.db.WithContext(ctx).
		Where("key = ?", itinerariesStorageKey).
		First(&blob).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error reading saved itineraries: %v", err)
		}
		return nil
	}
	return decodeSnapshots(blob.Payload)
}

func (r *savedItineraryRepository) Get(ctx context.Context, id string) *catalog_models.SavedItinerary {
	for _, item := range r.List(ctx) {
		if item.ID == id {
			found := item
			return &found
		}
	}
	return nil
}

func (r *savedItineraryRepository) Save(ctx context.Context, item catalog_models.SavedItinerary) error {
	list := upsertSnapshot(r.List(ctx), item)
	return r.writeList(ctx, list)
}

func (r *savedItineraryRepository) Remove(ctx context.Context, id string) error {
	list := removeSnapshot(r.List(ctx), id)
	return r.writeList(ctx, list)
}

func (r *savedItineraryRepository) writeList(ctx context.Context, list []catalog_models.SavedItinerary) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	blob := db_models.StorageBlob{
		Key:     itinerariesStorageKey,
		Payload: string(payload),
	}
	if err := r.db.WithContext(ctx).Save(&blob).Error; err != nil {
		log.Printf("Error writing saved itineraries: %v", err)
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

// decodeSnapshots tolerates anything: empty payloads and malformed JSON both
// read as no saved items.
func decodeSnapshots(payload string) []catalog_models.SavedItinerary {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	var list []catalog_models.SavedItinerary
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		log.Printf("Error parsing saved itineraries, treating as empty: %v", err)
		return nil
	}
	return list
}

// upsertSnapshot replaces an existing id in place, otherwise prepends so the
// newest save is first.
func upsertSnapshot(list []catalog_models.SavedItinerary, item catalog_models.SavedItinerary) []catalog_models.SavedItinerary {
	for i := range list {
		if list[i].ID == item.ID {
			list[i] = item
			return list
		}
	}
	return append([]catalog_models.SavedItinerary{item}, list...)
}

func removeSnapshot(list []catalog_models.SavedItinerary, id string) []catalog_models.SavedItinerary {
	filtered := list[:0]
	for _, item := range list {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
