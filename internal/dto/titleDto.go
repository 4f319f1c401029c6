package dto

import (
	"github.com/qutha/yamdb-final/internal/repository"
)

// CreateTitleDTO for creating a title. Genres and category are referenced
// by slug; category may be omitted and stays unassigned.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Description *string  `json:"description"`
	Year        int      `json:"year" binding:"required,gt=0"`
	Genre       []string `json:"genre" binding:"required,min=1,dive,slug"`
	Category    *string  `json:"category" binding:"omitempty,slug"`
}

// UpdateTitleDTO for partial title updates; nil fields stay untouched
type UpdateTitleDTO struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`
	Description *string  `json:"description"`
	Year        *int     `json:"year" binding:"omitempty,gt=0"`
	Genre       []string `json:"genre" binding:"omitempty,min=1,dive,slug"`
	Category    *string  `json:"category" binding:"omitempty,slug"`
}

// TitleResponse for returning a title with its computed rating. Rating is
// null when the title has no reviews.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// FromModelToTitleResponse converts an aggregated title row to TitleResponse DTO
func FromModelToTitleResponse(title *repository.TitleWithRating) *TitleResponse {
	genres := make([]GenreResponse, 0, len(title.Genres))
	for i := range title.Genres {
		genres = append(genres, *FromModelToGenreResponse(&title.Genres[i]))
	}

	response := &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Description: title.Description,
		Year:        title.Year,
		Rating:      title.Rating,
		Genre:       genres,
	}
	if title.Category != nil {
		response.Category = FromModelToCategoryResponse(title.Category)
	}
	return response
}
