package entity

type Movie struct {
	Base
	Title         string `db:"title"`
	Genre         string `db:"genre"`
	Publisher     string `db:"publisher"`
	YearPublished string `db:"year_published"`
	OwnerID       int64  `db:"owner_id"`
}

// OwnedBy reports whether userID created the movie
func (m *Movie) OwnedBy(userID int64) bool {
	return m.OwnerID == userID
}
