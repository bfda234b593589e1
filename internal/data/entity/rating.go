package entity

type Rating struct {
	BaseSimple
	MovieID int64   `db:"movie_id"`
	UserID  int64   `db:"user_id"`
	Value   float64 `db:"value"` // 0-5
}
