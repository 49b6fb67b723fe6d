package viewmodel

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
)

// UserIDFunc reports the signed-in user, if any.
type UserIDFunc func(ctx context.Context) (string, bool)

// PostsViewModel backs the social feed.
type PostsViewModel struct {
	uc       *usecases.PostsUseCases
	scope    *Scope
	posts    contentLoader[domain.Posts]
	save     saveMachine
	messages *Messages
	userID   UserIDFunc
	logger   *log.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewPostsViewModel(ctx context.Context, uc *usecases.PostsUseCases, userID UserIDFunc, logger *log.Logger) *PostsViewModel {
	logger = logger.WithPrefix("posts")
	scope := NewScope(ctx, logger)

	vm := &PostsViewModel{
		uc:       uc,
		scope:    scope,
		posts:    newContentLoader[domain.Posts](scope),
		save:     newSaveMachine(scope, logger),
		messages: NewMessages(),
		userID:   userID,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
	vm.Refresh()
	return vm
}

func (vm *PostsViewModel) Posts() *Observable[ContentState[domain.Posts]] { return vm.posts.state }
func (vm *PostsViewModel) SaveState() *Observable[SaveState]              { return vm.save.state }
func (vm *PostsViewModel) Messages() *Messages                            { return vm.messages }

func (vm *PostsViewModel) Refresh() {
	vm.posts.load("get posts", vm.uc.GetPosts.Execute)
}

// CreatePost uploads the image first when one is given, then stores the post
// with its URL. The feed is refetched on success.
func (vm *PostsViewModel) CreatePost(post domain.Post, image []byte) bool {
	return submit(vm.save, "create post", func(ctx context.Context) domain.Result[string] {
		if len(image) > 0 {
			uploaded := vm.uc.UploadImage.Execute(ctx, image)
			url, err := uploaded.Get()
			if err != nil {
				return domain.Failure[string](uploaded.Err())
			}
			post.ImageURL = url
		}
		return vm.uc.CreatePost.Execute(ctx, post)
	}, func(string) { vm.Refresh() })
}

// ToggleLike awaits the remote toggle, then patches the loaded feed. A
// failure leaves the feed untouched and emits a message.
func (vm *PostsViewModel) ToggleLike(postID string) bool {
	if !vm.acquire(postID) {
		vm.logger.Debug("like already in flight", "post_id", postID)
		return false
	}

	launched := vm.scope.Launch("toggle like", func(ctx context.Context) {
		defer vm.release(postID)

		res := guarded(ctx, func(ctx context.Context) domain.Result[domain.Post] {
			return vm.uc.LikePost.Execute(ctx, postID)
		})

		post, err := res.Get()
		if err != nil {
			vm.logger.Warn("toggle like failed", "post_id", postID, "err", err)
			vm.emit(fmt.Sprintf("Failed to update like: %s", err))
			return
		}

		vm.posts.patch(func(ps domain.Posts) domain.Posts {
			if old, ok := ps.Find(post.ID); ok && post.AuthorName == "" {
				post.AuthorName = old.AuthorName
			}
			return ps.Replace(post)
		})
	})
	if !launched {
		vm.release(postID)
	}
	return launched
}

// CanDelete is the guard the feed uses to offer deletion at all.
func (vm *PostsViewModel) CanDelete(post domain.Post) bool {
	uid, ok := vm.userID(vm.scope.Context())
	return ok && post.OwnedBy(uid)
}

// DeletePost refuses locally when the caller is not the author, so the
// remote call is never issued for someone else's post.
func (vm *PostsViewModel) DeletePost(post domain.Post) bool {
	if !vm.CanDelete(post) {
		vm.logger.Warn("delete refused, not the author", "post_id", post.ID)
		vm.emit("You can only delete your own posts")
		return false
	}

	return vm.scope.Launch("delete post", func(ctx context.Context) {
		res := guarded(ctx, func(ctx context.Context) domain.Result[string] {
			return vm.uc.DeletePost.Execute(ctx, post.ID)
		})
		if err := res.Err(); err != nil {
			vm.logger.Warn("delete post failed", "post_id", post.ID, "err", err)
			vm.emit(fmt.Sprintf("Failed to delete post: %s", err.Message))
			return
		}
		vm.Refresh()
	})
}

func (vm *PostsViewModel) ResetSaveState() {
	vm.save.reset()
}

func (vm *PostsViewModel) Wait() {
	vm.scope.Wait()
}

func (vm *PostsViewModel) Close() {
	vm.scope.Close()
	vm.messages.close()
	vm.posts.state.close()
	vm.save.state.close()
}

func (vm *PostsViewModel) emit(msg string) {
	vm.scope.apply(func() { vm.messages.Emit(msg) })
}

func (vm *PostsViewModel) acquire(postID string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.inFlight[postID] {
		return false
	}
	vm.inFlight[postID] = true
	return true
}

func (vm *PostsViewModel) release(postID string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	delete(vm.inFlight, postID)
}
