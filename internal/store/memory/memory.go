// Package memory is a process-local implementation of the store
// repositories. It mirrors the relational schema, including its foreign
// keys and unique constraints, and is used for development and tests.
package memory

import (
	"sync"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

type likeRow struct {
	postID    int
	userID    int
	createdAt time.Time
}

// DB holds every table behind a single lock. Rows are kept in insertion
// order, which is also id and created_at order.
type DB struct {
	mu       sync.RWMutex
	lastTime time.Time
	nextID   map[string]int

	users    []types.User
	posts    []types.Post
	likes    []likeRow
	comments []types.Comment
	messages []types.Message
	requests []types.FriendRequest
}

func New() *DB {
	return &DB{nextID: make(map[string]int)}
}

func (d *DB) Users() *UserRepository                   { return &UserRepository{db: d} }
func (d *DB) Posts() *PostRepository                   { return &PostRepository{db: d} }
func (d *DB) Likes() *LikeRepository                   { return &LikeRepository{db: d} }
func (d *DB) Comments() *CommentRepository             { return &CommentRepository{db: d} }
func (d *DB) Messages() *MessageRepository             { return &MessageRepository{db: d} }
func (d *DB) FriendRequests() *FriendRequestRepository { return &FriendRequestRepository{db: d} }
func (d *DB) Notifications() *NotificationRepository   { return &NotificationRepository{db: d} }

// stamp returns a strictly increasing timestamp at database precision.
// Callers must hold the write lock.
func (d *DB) stamp() time.Time {
	t := time.Now().UTC().Truncate(time.Microsecond)
	if !t.After(d.lastTime) {
		t = d.lastTime.Add(time.Microsecond)
	}
	d.lastTime = t
	return t
}

// id returns the next serial value for table. Callers must hold the write lock.
func (d *DB) id(table string) int {
	d.nextID[table]++
	return d.nextID[table]
}

func (d *DB) userIndex(id int) int {
	for i, user := range d.users {
		if user.ID == id {
			return i
		}
	}
	return -1
}

func (d *DB) postIndex(id int) int {
	for i, post := range d.posts {
		if post.ID == id {
			return i
		}
	}
	return -1
}

func (d *DB) userName(id int) (string, bool) {
	if i := d.userIndex(id); i >= 0 {
		return d.users[i].Name, true
	}
	return "", false
}

func (d *DB) likeCount(postID int) int {
	count := 0
	for _, like := range d.likes {
		if like.postID == postID {
			count++
		}
	}
	return count
}

// deletePostCascade removes a post and the rows that reference it.
// Callers must hold the write lock.
func (d *DB) deletePostCascade(i int) types.Post {
	post := d.posts[i]
	d.posts = append(d.posts[:i], d.posts[i+1:]...)
	d.likes = filter(d.likes, func(l likeRow) bool { return l.postID != post.ID })
	d.comments = filter(d.comments, func(c types.Comment) bool { return c.PostID != post.ID })
	return post
}

// deleteUserCascade removes a user and the rows whose foreign keys point at
// it. Posts have no such key and are left alone. Callers must hold the
// write lock.
func (d *DB) deleteUserCascade(i int) {
	id := d.users[i].ID
	d.users = append(d.users[:i], d.users[i+1:]...)
	d.likes = filter(d.likes, func(l likeRow) bool { return l.userID != id })
	d.comments = filter(d.comments, func(c types.Comment) bool { return c.UserID != id })
	d.messages = filter(d.messages, func(m types.Message) bool {
		return m.SenderID != id && m.ReceiverID != id
	})
	d.requests = filter(d.requests, func(r types.FriendRequest) bool {
		return r.SenderID != id && r.ReceiverID != id
	})
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := rows[:0]
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}
