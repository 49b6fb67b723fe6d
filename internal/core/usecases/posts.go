package usecases

import (
	"context"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

type GetPosts struct {
	repo domain.PostsRepository
}

func NewGetPosts(repo domain.PostsRepository) *GetPosts {
	return &GetPosts{repo: repo}
}

func (u *GetPosts) Execute(ctx context.Context) domain.Result[domain.Posts] {
	return u.repo.GetPosts(ctx)
}

type CreatePost struct {
	repo domain.PostsRepository
}

func NewCreatePost(repo domain.PostsRepository) *CreatePost {
	return &CreatePost{repo: repo}
}

func (u *CreatePost) Execute(ctx context.Context, post domain.Post) domain.Result[string] {
	return u.repo.CreatePost(ctx, post)
}

type LikePost struct {
	repo domain.PostsRepository
}

func NewLikePost(repo domain.PostsRepository) *LikePost {
	return &LikePost{repo: repo}
}

func (u *LikePost) Execute(ctx context.Context, postID string) domain.Result[domain.Post] {
	return u.repo.LikePost(ctx, postID)
}

type DeletePost struct {
	repo domain.PostsRepository
}

func NewDeletePost(repo domain.PostsRepository) *DeletePost {
	return &DeletePost{repo: repo}
}

func (u *DeletePost) Execute(ctx context.Context, postID string) domain.Result[string] {
	return u.repo.DeletePost(ctx, postID)
}

// UploadImage pushes image bytes to the media host and yields the public URL.
type UploadImage struct {
	uploader domain.ImageUploader
}

func NewUploadImage(uploader domain.ImageUploader) *UploadImage {
	return &UploadImage{uploader: uploader}
}

func (u *UploadImage) Execute(ctx context.Context, image []byte) domain.Result[string] {
	url, err := u.uploader.Upload(ctx, image)
	if err != nil {
		return domain.FailureFrom[string](err)
	}
	return domain.Success(url)
}

type PostsUseCases struct {
	GetPosts    *GetPosts
	CreatePost  *CreatePost
	LikePost    *LikePost
	DeletePost  *DeletePost
	UploadImage *UploadImage
}

func NewPostsUseCases(posts domain.PostsRepository, uploader domain.ImageUploader) *PostsUseCases {
	return &PostsUseCases{
		GetPosts:    NewGetPosts(posts),
		CreatePost:  NewCreatePost(posts),
		LikePost:    NewLikePost(posts),
		DeletePost:  NewDeletePost(posts),
		UploadImage: NewUploadImage(uploader),
	}
}
