package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"learnhub/internal/domain"
	"learnhub/internal/infrastructure/cache"
)

type CatalogRepository struct {
	db    *gorm.DB
	cache *cache.CatalogCache
}

// NewCatalogRepository wires the postgres store. c may be nil.
func NewCatalogRepository(db *gorm.DB, c *cache.CatalogCache) *CatalogRepository {
	return &CatalogRepository{db: db, cache: c}
}

// catalogModels lists every table the catalog is stored in.
var catalogModels = []any{
	&CourseGorm{},
	&RoadmapStepGorm{},
	&VideoGorm{},
	&ResourceSectionGorm{},
	&ResourceLinkGorm{},
	&NotificationGorm{},
}

func (r *CatalogRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(catalogModels...)
}

// Seed fills the store with c when every catalog table is empty. It
// reports whether anything was written. A partially filled store is left
// alone.
func (r *CatalogRepository) Seed(ctx context.Context, c domain.Catalog) (bool, error) {
	for _, model := range catalogModels {
		var count int64
		if err := r.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			return false, fmt.Errorf("count %T: %w", model, err)
		}
		if count > 0 {
			return false, nil
		}
	}

	rows := fromCatalog(c)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rows.course != nil {
			if err := tx.Create(rows.course).Error; err != nil {
				return fmt.Errorf("seed course: %w", err)
			}
		}
		if len(rows.steps) > 0 {
			if err := tx.Create(&rows.steps).Error; err != nil {
				return fmt.Errorf("seed roadmap: %w", err)
			}
		}
		if len(rows.videos) > 0 {
			if err := tx.Create(&rows.videos).Error; err != nil {
				return fmt.Errorf("seed videos: %w", err)
			}
		}
		if len(rows.sections) > 0 {
			if err := tx.Create(&rows.sections).Error; err != nil {
				return fmt.Errorf("seed resources: %w", err)
			}
		}
		if len(rows.notes) > 0 {
			if err := tx.Create(&rows.notes).Error; err != nil {
				return fmt.Errorf("seed notifications: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if r.cache != nil {
		if err := r.cache.Invalidate(ctx); err != nil {
			log.Printf("Failed to invalidate catalog cache: %v", err)
		}
	}
	return true, nil
}

// Load reads the whole catalog, preferring the cache.
func (r *CatalogRepository) Load(ctx context.Context) (domain.Catalog, error) {
	if r.cache != nil {
		c, ok, err := r.cache.Get(ctx)
		if err != nil {
			log.Printf("Catalog cache read failed: %v", err)
		}
		if ok {
			return c, nil
		}
	}

	c, err := r.loadFromDB(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}

	if r.cache != nil {
		if err := r.cache.Save(ctx, c); err != nil {
			log.Printf("Catalog cache write failed: %v", err)
		}
	}
	return c, nil
}

// LoadOr is Load with fallback returned when the store holds no catalog.
func (r *CatalogRepository) LoadOr(ctx context.Context, fallback domain.Catalog) (domain.Catalog, error) {
	c, err := r.Load(ctx)
	if errors.Is(err, domain.ErrCatalogEmpty) {
		log.Println("Catalog tables are empty, using built-in catalog")
		return fallback, nil
	}
	return c, err
}

func (r *CatalogRepository) loadFromDB(ctx context.Context) (domain.Catalog, error) {
	db := r.db.WithContext(ctx)

	var courses []CourseGorm
	if err := db.Order("created_at asc").Limit(1).Find(&courses).Error; err != nil {
		return domain.Catalog{}, fmt.Errorf("load course: %w", err)
	}
	var steps []RoadmapStepGorm
	if err := db.Order("position asc").Find(&steps).Error; err != nil {
		return domain.Catalog{}, fmt.Errorf("load roadmap: %w", err)
	}
	var videos []VideoGorm
	if err := db.Order("position asc").Find(&videos).Error; err != nil {
		return domain.Catalog{}, fmt.Errorf("load videos: %w", err)
	}
	var sections []ResourceSectionGorm
	err := db.Preload("Links", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Order("position asc").Find(&sections).Error
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load resources: %w", err)
	}
	var notes []NotificationGorm
	if err := db.Order("created_at desc").Find(&notes).Error; err != nil {
		return domain.Catalog{}, fmt.Errorf("load notifications: %w", err)
	}

	var c domain.Catalog
	if len(courses) > 0 {
		c.Course = courses[0].ToDomain()
	}
	for i := range steps {
		c.Roadmap = append(c.Roadmap, steps[i].ToDomain())
	}
	for i := range videos {
		c.Videos = append(c.Videos, videos[i].ToDomain())
	}
	for i := range sections {
		c.Resources = append(c.Resources, sections[i].ToDomain())
	}
	for i := range notes {
		c.Notifications = append(c.Notifications, notes[i].ToDomain())
	}
	if c.Empty() {
		return domain.Catalog{}, domain.ErrCatalogEmpty
	}
	return c, nil
}
