package remote

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

// postDocument is the stored shape of a post; read-time fields are not persisted.
type postDocument struct {
	ID              string        `json:"id"`
	CreatedByUserID string        `json:"createdByUserId"`
	HabitSnapshot   *domain.Habit `json:"habitSnapshot,omitempty"`
	Description     string        `json:"description"`
	ImageURL        string        `json:"imageUrl,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	LikedByUserIDs  []string      `json:"likedByUserIds"`
}

func toPostDocument(p domain.Post) postDocument {
	liked := p.LikedByUserIDs
	if liked == nil {
		liked = []string{}
	}
	return postDocument{
		ID:              p.ID,
		CreatedByUserID: p.CreatedByUserID,
		HabitSnapshot:   p.HabitSnapshot,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		LikedByUserIDs:  liked,
	}
}

func decodePost(doc *domain.Document) (domain.Post, error) {
	var d postDocument
	if err := decode(doc, &d); err != nil {
		return domain.Post{}, err
	}
	if d.LikedByUserIDs == nil {
		d.LikedByUserIDs = []string{}
	}
	return domain.Post{
		ID:              doc.ID,
		CreatedByUserID: d.CreatedByUserID,
		HabitSnapshot:   d.HabitSnapshot,
		Description:     d.Description,
		ImageURL:        d.ImageURL,
		CreatedAt:       d.CreatedAt,
		LikedByUserIDs:  d.LikedByUserIDs,
	}, nil
}

// CreatePost stores a post attributed to the caller, whatever the incoming
// CreatedByUserID says. Likes always start empty.
func (c *Client) CreatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	uid, err := c.currentUser(ctx)
	if err != nil {
		return domain.Post{}, err
	}

	post.ID = ""
	post.CreatedByUserID = uid
	post.LikedByUserIDs = []string{}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = c.now().UTC()
	}

	data, err := encode(toPostDocument(post))
	if err != nil {
		return domain.Post{}, err
	}

	id, err := c.store.Add(ctx, domain.PostsCollection, data)
	if err != nil {
		return domain.Post{}, storeError(err, "post")
	}
	post.ID = id

	if data, err = encode(toPostDocument(post)); err != nil {
		return domain.Post{}, err
	}
	if err := c.store.Set(ctx, domain.PostsCollection, id, data); err != nil {
		return domain.Post{}, storeError(err, "post")
	}

	post.Derive(uid)
	c.logger.Debug("post created", "post_id", id, "user_id", uid)
	return post, nil
}

// GetPosts lists every post, newest first, with author names joined and
// like fields derived for the caller. The feed is readable without a session.
func (c *Client) GetPosts(ctx context.Context) (domain.Posts, error) {
	docs, err := c.store.List(ctx, domain.PostsCollection)
	if err != nil {
		return domain.Posts{}, storeError(err, "posts")
	}

	viewer, _ := c.auth.CurrentUserID(ctx)
	names := make(map[string]string)

	items := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		p, err := decodePost(doc)
		if err != nil {
			return domain.Posts{}, err
		}

		name, seen := names[p.CreatedByUserID]
		if !seen {
			name = c.authorName(ctx, p.CreatedByUserID)
			names[p.CreatedByUserID] = name
		}
		p.AuthorName = name
		p.Derive(viewer)
		items = append(items, p)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return domain.Posts{Items: items}, nil
}

// authorName resolves a display name. A missing or unreadable profile leaves
// the name blank rather than failing the feed.
func (c *Client) authorName(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}

	doc, err := c.store.Get(ctx, domain.UsersCollection, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrDocumentNotFound) {
			c.logger.Warn("author lookup failed", "user_id", userID, "err", err)
		}
		return ""
	}

	var u domain.User
	if err := decode(doc, &u); err != nil {
		c.logger.Warn("author profile unreadable", "user_id", userID, "err", err)
		return ""
	}
	return u.Name
}

func (c *Client) readPost(ctx context.Context, postID string) (domain.Post, int64, error) {
	if postID == "" {
		return domain.Post{}, 0, domain.NewError(domain.KindValidation, "post id is required")
	}

	doc, err := c.store.Get(ctx, domain.PostsCollection, postID)
	if err != nil {
		return domain.Post{}, 0, storeError(err, "post")
	}

	p, err := decodePost(doc)
	return p, doc.Version, err
}

// LikePost toggles the caller's like with a conditional write.
func (c *Client) LikePost(ctx context.Context, postID string) (domain.Post, error) {
	uid, err := c.currentUser(ctx)
	if err != nil {
		return domain.Post{}, err
	}

	post, version, err := c.readPost(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}

	post.ToggleLike(uid)

	data, err := encode(toPostDocument(post))
	if err != nil {
		return domain.Post{}, err
	}
	if err := c.store.SetIfVersion(ctx, domain.PostsCollection, post.ID, version, data); err != nil {
		return domain.Post{}, storeError(err, "post")
	}

	post.AuthorName = c.authorName(ctx, post.CreatedByUserID)
	return post, nil
}

// DeletePost removes a post. Only its author may delete it.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	uid, err := c.currentUser(ctx)
	if err != nil {
		return err
	}

	post, _, err := c.readPost(ctx, postID)
	if err != nil {
		return err
	}
	if !post.OwnedBy(uid) {
		return domain.NewError(domain.KindForbidden, "only the author can delete this post")
	}

	return storeError(c.store.Delete(ctx, domain.PostsCollection, postID), "post")
}
