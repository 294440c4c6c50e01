package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Hero is a roster entry for a team member. Number stays a string so a
// blank jersey number is representable.
type Hero struct {
	bun.BaseModel `bun:"table:heroes,alias:h"`

	ID        int64     `bun:",pk,autoincrement"`
	Name      string    `bun:"name"`
	Position  string    `bun:"position"`
	Number    string    `bun:"number"`
	Image     string    `bun:"image"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `bun:"updated_at,nullzero"`
}
