package dto

import "github.com/club-invaders/fanclub/internal/entity"

// HeroResponse represents a roster entry as exposed over HTTP.
type HeroResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Number   string `json:"number"`
	Image    string `json:"image"`
}

// FromHero converts a hero entity into its transport shape.
func FromHero(hero entity.Hero) HeroResponse {
	return HeroResponse{
		ID:       hero.ID,
		Name:     hero.Name,
		Position: hero.Position,
		Number:   hero.Number,
		Image:    hero.Image,
	}
}

// FromHeroes converts a list of hero entities.
func FromHeroes(heroes []entity.Hero) []HeroResponse {
	out := make([]HeroResponse, 0, len(heroes))
	for _, hero := range heroes {
		out = append(out, FromHero(hero))
	}
	return out
}
