package domain

import (
	"strings"
	"time"
)

const MaxDescriptionLen = 2000

// Post is a shared progress update. CreatedByUserID is always set by the
// adapter from the authenticated caller. AuthorName, LikeCount and LikedByMe
// are derived at read time and never stored.
type Post struct {
	ID              string    `json:"id"`
	CreatedByUserID string    `json:"createdByUserId"`
	HabitSnapshot   *Habit    `json:"habitSnapshot,omitempty"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	LikedByUserIDs  []string  `json:"likedByUserIds"`
	AuthorName      string    `json:"authorName,omitempty"`
	LikeCount       int       `json:"likeCount"`
	LikedByMe       bool      `json:"likedByMe"`
}

type Posts struct {
	Items []Post `json:"items"`
}

func NewPost(description string, snapshot *Habit) Post {
	return Post{
		Description:    strings.TrimSpace(description),
		HabitSnapshot:  snapshot,
		CreatedAt:      time.Now().UTC(),
		LikedByUserIDs: []string{},
	}
}

// OwnedBy is the permission check for delete.
func (p Post) OwnedBy(userID string) bool {
	return userID != "" && p.CreatedByUserID == userID
}

func (p Post) LikedBy(userID string) bool {
	for _, id := range p.LikedByUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike adds userID to the liked set if absent and removes it if
// present. Duplicates already in the set are collapsed.
func (p *Post) ToggleLike(userID string) {
	liked := p.LikedBy(userID)

	seen := make(map[string]bool, len(p.LikedByUserIDs))
	next := make([]string, 0, len(p.LikedByUserIDs)+1)
	for _, id := range p.LikedByUserIDs {
		if id == userID || seen[id] {
			continue
		}
		seen[id] = true
		next = append(next, id)
	}
	if !liked {
		next = append(next, userID)
	}

	p.LikedByUserIDs = next
	p.Derive(userID)
}

// Derive fills the read-time fields for the given viewer.
func (p *Post) Derive(viewerID string) {
	p.LikeCount = len(p.LikedByUserIDs)
	p.LikedByMe = viewerID != "" && p.LikedBy(viewerID)
}

func (ps Posts) Find(id string) (Post, bool) {
	for _, p := range ps.Items {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Replace returns a copy of the collection with the post of the same id
// swapped for p.
func (ps Posts) Replace(p Post) Posts {
	items := make([]Post, len(ps.Items))
	copy(items, ps.Items)
	for i := range items {
		if items[i].ID == p.ID {
			items[i] = p
		}
	}
	return Posts{Items: items}
}
