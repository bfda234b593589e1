package entity

type Comment struct {
	BaseSimple
	MovieID *int64 `db:"movie_id"`
	UserID  int64  `db:"user_id"`
	Text    string `db:"text"`

	// Replies is ordered by insertion, oldest first
	Replies []*Reply `db:"-"`
}

type Reply struct {
	BaseSimple
	CommentID int64  `db:"comment_id"`
	UserID    int64  `db:"user_id"`
	Text      string `db:"text"`
}
