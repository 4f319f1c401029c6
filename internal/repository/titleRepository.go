package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/qutha/yamdb-final/internal/models"
)

// TitleFilter carries the optional list filters: name substring, exact
// year, genre slug and category slug.
type TitleFilter struct {
	Name     string
	Year     *int
	Genre    string
	Category string
}

// TitleWithRating pairs a title with its rating, the arithmetic mean of
// the scores of its reviews. Rating is nil when no reviews exist so it
// serializes as null rather than implying a worst possible score.
type TitleWithRating struct {
	models.Title
	Rating *float64
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*TitleWithRating, error)
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]TitleWithRating, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	// Genres go through ReplaceGenres, Save would only append to the join
	// table.
	return r.db.WithContext(ctx).Omit("Genres", "Category", "Reviews").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) FindByID(ctx context.Context, id int64) (*TitleWithRating, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Category").
		First(&title, id).Error
	if err != nil {
		return nil, err
	}

	rating, err := r.averageRating(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TitleWithRating{Title: title, Rating: rating}, nil
}

// List returns titles ordered by id ascending with their ratings computed
// at query time. No caching: every request recomputes the aggregate.
func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]TitleWithRating, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var titles []models.Title
	offset := (page - 1) * pageSize
	err := r.filtered(ctx, filter).
		Distinct("titles.*").
		Preload("Genres").
		Preload("Category").
		Order("titles.id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	ratings, err := r.ratingsFor(ctx, titles)
	if err != nil {
		return nil, 0, err
	}

	result := make([]TitleWithRating, 0, len(titles))
	for _, title := range titles {
		item := TitleWithRating{Title: title}
		if rating, ok := ratings[title.ID]; ok {
			item.Rating = &rating
		}
		result = append(result, item)
	}
	return result, total, nil
}

func (r *titleRepository) filtered(ctx context.Context, filter TitleFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Title{})
	if filter.Name != "" {
		query = query.Where("LOWER(titles.name) LIKE ?", "%"+likePattern(filter.Name)+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}
	if filter.Category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		query = query.
			Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}
	return query
}

// ratingsFor computes AVG(score) for a page of titles in one grouped
// query. Titles with no reviews are simply absent from the map.
func (r *titleRepository) ratingsFor(ctx context.Context, titles []models.Title) (map[int64]float64, error) {
	ratings := make(map[int64]float64, len(titles))
	if len(titles) == 0 {
		return ratings, nil
	}

	ids := make([]int64, 0, len(titles))
	for _, title := range titles {
		ids = append(ids, title.ID)
	}

	var rows []struct {
		TitleID int64
		Rating  float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("title_id, AVG(score) as rating").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		ratings[row.TitleID] = row.Rating
	}
	return ratings, nil
}

func (r *titleRepository) averageRating(ctx context.Context, titleID int64) (*float64, error) {
	var avg sql.NullFloat64
	row := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(score)").
		Where("title_id = ?", titleID).
		Row()
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
