// Package memory is an in-process implementation of the repository
// interfaces. It mirrors the foreign key, cascade and rollback behavior of
// the postgres schema.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/utils"
)

// Store holds every table behind a single lock.
type Store struct {
	mu sync.RWMutex
	// txMu serializes WithinTx callers so a unit of work sees no interleaving
	txMu sync.Mutex

	seq      map[string]int64
	users    map[int64]*entity.User
	movies   map[int64]*entity.Movie
	ratings  map[int64]*entity.Rating
	comments map[int64]*entity.Comment
	replies  map[int64]*entity.Reply
}

func New() *Store {
	return &Store{
		seq:      map[string]int64{},
		users:    map[int64]*entity.User{},
		movies:   map[int64]*entity.Movie{},
		ratings:  map[int64]*entity.Rating{},
		comments: map[int64]*entity.Comment{},
		replies:  map[int64]*entity.Reply{},
	}
}

// Repository bundles the store behind the repository interfaces.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    &userRepo{s},
		Movie:   &movieRepo{s},
		Rating:  &ratingRepo{s},
		Comment: &commentRepo{s},
		Reply:   &replyRepo{s},
		Tx:      s,
		Health:  s,
	}
}

// WithinTx restores every table when fn fails. Sequences keep advancing, as
// postgres sequences do.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type tables struct {
	users    map[int64]*entity.User
	movies   map[int64]*entity.Movie
	ratings  map[int64]*entity.Rating
	comments map[int64]*entity.Comment
	replies  map[int64]*entity.Reply
}

func (s *Store) snapshot() tables {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return tables{
		users:    cloneTable(s.users),
		movies:   cloneTable(s.movies),
		ratings:  cloneTable(s.ratings),
		comments: cloneTable(s.comments),
		replies:  cloneTable(s.replies),
	}
}

func (s *Store) restore(t tables) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = t.users
	s.movies = t.movies
	s.ratings = t.ratings
	s.comments = t.comments
	s.replies = t.replies
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// ==================== USERS ====================

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return utils.ErrUsernameTaken
		}
		if strings.EqualFold(u.Email, user.Email) {
			return utils.ErrEmailTaken
		}
	}

	user.ID = r.s.next("users")
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r *userRepo) find(match func(*entity.User) bool) *entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

// ==================== MOVIES ====================

type movieRepo struct{ s *Store }

func (r *movieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	movie.ID = r.s.next("movies")
	cp := *movie
	r.s.movies[movie.ID] = &cp
	return nil
}

func (r *movieRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if m, ok := r.s.movies[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *movieRepo) FindAll(ctx context.Context, offset, limit int) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := sortedKeys(r.s.movies)
	if limit > 0 {
		if offset >= len(ids) {
			ids = nil
		} else {
			ids = ids[offset:min(offset+limit, len(ids))]
		}
	}

	movies := make([]*entity.Movie, 0, len(ids))
	for _, id := range ids {
		cp := *r.s.movies[id]
		movies = append(movies, &cp)
	}
	return movies, nil
}

func (r *movieRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.movies)), nil
}

func (r *movieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.movies[movie.ID]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	existing.Title = movie.Title
	existing.Genre = movie.Genre
	existing.Publisher = movie.Publisher
	existing.YearPublished = movie.YearPublished
	existing.UpdatedAt = movie.UpdatedAt
	return nil
}

func (r *movieRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[id]; !ok {
		return repository.ErrNoRowsAffected
	}
	delete(r.s.movies, id)

	for rid, rating := range r.s.ratings {
		if rating.MovieID == id {
			delete(r.s.ratings, rid)
		}
	}
	for cid, comment := range r.s.comments {
		if comment.MovieID != nil && *comment.MovieID == id {
			r.s.deleteCommentLocked(cid)
		}
	}
	return nil
}

// ==================== RATINGS ====================

type ratingRepo struct{ s *Store }

func (r *ratingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[rating.MovieID]; !ok {
		return utils.ErrMovieNotFound
	}

	rating.ID = r.s.next("ratings")
	cp := *rating
	r.s.ratings[rating.ID] = &cp
	return nil
}

func (r *ratingRepo) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ratings := []*entity.Rating{}
	for _, id := range sortedKeys(r.s.ratings) {
		if rating := r.s.ratings[id]; rating.MovieID == movieID {
			cp := *rating
			ratings = append(ratings, &cp)
		}
	}
	return ratings, nil
}

func (r *ratingRepo) GetMovieRatingStats(ctx context.Context, movieID int64) (float64, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var sum float64
	var count int64
	for _, rating := range r.s.ratings {
		if rating.MovieID == movieID {
			sum += rating.Value
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

// ==================== COMMENTS ====================

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if comment.MovieID != nil {
		if _, ok := r.s.movies[*comment.MovieID]; !ok {
			return utils.ErrMovieNotFound
		}
	}

	comment.ID = r.s.next("comments")
	cp := *comment
	cp.Replies = nil
	r.s.comments[comment.ID] = &cp
	return nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c, ok := r.s.comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *commentRepo) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := []*entity.Comment{}
	for _, id := range sortedKeys(r.s.comments) {
		c := r.s.comments[id]
		if c.MovieID != nil && *c.MovieID == movieID {
			cp := *c
			comments = append(comments, &cp)
		}
	}
	return comments, nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrNoRowsAffected
	}
	r.s.deleteCommentLocked(id)
	return nil
}

func (s *Store) deleteCommentLocked(id int64) {
	delete(s.comments, id)
	for rid, reply := range s.replies {
		if reply.CommentID == id {
			delete(s.replies, rid)
		}
	}
}

// ==================== REPLIES ====================

type replyRepo struct{ s *Store }

func (r *replyRepo) Create(ctx context.Context, reply *entity.Reply) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[reply.CommentID]; !ok {
		return utils.ErrCommentNotFound
	}

	reply.ID = r.s.next("replies")
	cp := *reply
	r.s.replies[reply.ID] = &cp
	return nil
}

func (r *replyRepo) FindByID(ctx context.Context, id int64) (*entity.Reply, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if reply, ok := r.s.replies[id]; ok {
		cp := *reply
		return &cp, nil
	}
	return nil, nil
}

func (r *replyRepo) FindByCommentIDs(ctx context.Context, commentIDs []int64) (map[int64][]*entity.Reply, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[int64]bool, len(commentIDs))
	for _, id := range commentIDs {
		wanted[id] = true
	}

	grouped := make(map[int64][]*entity.Reply, len(commentIDs))
	for _, id := range sortedKeys(r.s.replies) {
		reply := r.s.replies[id]
		if wanted[reply.CommentID] {
			cp := *reply
			grouped[reply.CommentID] = append(grouped[reply.CommentID], &cp)
		}
	}
	return grouped, nil
}

func (r *replyRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.replies[id]; !ok {
		return repository.ErrNoRowsAffected
	}
	delete(r.s.replies, id)
	return nil
}

func cloneTable[T any](m map[int64]*T) map[int64]*T {
	out := make(map[int64]*T, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
