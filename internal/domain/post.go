package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/lyricroom/backend/internal/domain/ledger"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/xcontext"
)

type PostDomain interface {
	GetList(context.Context, *model.GetListPostRequest) (*model.GetListPostResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Update(context.Context, *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
	Like(context.Context, *model.LikePostRequest) (*model.LikePostResponse, error)
	Comment(context.Context, *model.CommentPostRequest) (*model.CommentPostResponse, error)
	GetComments(context.Context, *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
	Share(context.Context, *model.SharePostRequest) (*model.SharePostResponse, error)
	Save(context.Context, *model.SavePostRequest) (*model.SavePostResponse, error)
}

type postDomain struct {
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
	ledger      ledger.Ledger
}

func NewPostDomain(
	postRepo repository.PostRepository,
	profileRepo repository.ProfileRepository,
	ledger ledger.Ledger,
) *postDomain {
	return &postDomain{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		ledger:      ledger,
	}
}

func (d *postDomain) GetList(
	ctx context.Context, req *model.GetListPostRequest,
) (*model.GetListPostResponse, error) {
	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post list: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := convertPosts(ctx, d.profileRepo, d.postRepo, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetListPostResponse{Posts: clientPosts}, nil
}

func (d *postDomain) Get(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error) {
	post, err := d.getPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.GetPostResponse(post)
	return &resp, nil
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	authorID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Content == "" && req.Image == "" {
		return nil, errorx.New(errorx.BadRequest, "Post must have content or image")
	}

	post := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		AuthorID: authorID,
		Content:  req.Content,
		Image:    req.Image,
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	clientPost, err := d.getPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	resp := model.CreatePostResponse(clientPost)
	return &resp, nil
}

func (d *postDomain) Update(
	ctx context.Context, req *model.UpdatePostRequest,
) (*model.UpdatePostResponse, error) {
	authorID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Post not found")
	}

	if post.AuthorID != authorID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can edit the post")
	}

	// Empty fields are left unchanged.
	err = d.postRepo.UpdateByID(ctx, req.ID, entity.Post{Content: req.Content, Image: req.Image})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
		return nil, errorx.Unknown
	}

	clientPost, err := d.getPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.UpdatePostResponse(clientPost)
	return &resp, nil
}

func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Post not found")
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the post")
	}

	if err := d.ledger.Purge(ctx, ledger.KindPost, req.ID); err != nil {
		return nil, err
	}

	return &model.DeletePostResponse{Message: "Post deleted"}, nil
}

func (d *postDomain) Like(ctx context.Context, req *model.LikePostRequest) (*model.LikePostResponse, error) {
	userID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	result, err := d.ledger.Toggle(ctx, ledger.PostLikes, req.ID, userID)
	if err != nil {
		return nil, err
	}

	post, err := d.getPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.LikePostResponse{Post: post, Liked: result.Member}, nil
}

func (d *postDomain) Comment(
	ctx context.Context, req *model.CommentPostRequest,
) (*model.CommentPostResponse, error) {
	authorID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	comment, err := d.ledger.AppendComment(ctx, req.ID, authorID, req.Text)
	if err != nil {
		return nil, err
	}

	count, err := d.postRepo.CountComments(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count comments: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CommentPostResponse{
		Comment:       model.ConvertComment(comment),
		CommentsCount: count,
	}, nil
}

func (d *postDomain) GetComments(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	if _, err := d.postRepo.GetByID(ctx, req.ID); err != nil {
		return nil, notFoundOr(ctx, err, "Post not found")
	}

	comments, err := d.postRepo.GetComments(ctx, req.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	clientComments := []model.Comment{}
	for _, c := range comments {
		clientComments = append(clientComments, model.ConvertComment(&c))
	}

	return &model.GetCommentsResponse{Comments: clientComments}, nil
}

func (d *postDomain) Share(ctx context.Context, req *model.SharePostRequest) (*model.SharePostResponse, error) {
	if _, err := d.ledger.Increment(ctx, ledger.PostShares, req.ID); err != nil {
		return nil, err
	}

	post, err := d.getPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.SharePostResponse(post)
	return &resp, nil
}

func (d *postDomain) Save(ctx context.Context, req *model.SavePostRequest) (*model.SavePostResponse, error) {
	userID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	result, err := d.ledger.Toggle(ctx, ledger.PostSaves, req.ID, userID)
	if err != nil {
		return nil, err
	}

	post, err := d.getPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.SavePostResponse{Post: post, Saved: result.Member}, nil
}

func (d *postDomain) getPost(ctx context.Context, id string) (model.Post, error) {
	post, err := d.postRepo.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, notFoundOr(ctx, err, "Post not found")
	}

	posts, err := convertPosts(ctx, d.profileRepo, d.postRepo, []entity.Post{*post})
	if err != nil {
		return model.Post{}, err
	}

	return posts[0], nil
}

// convertPosts attaches the author and the comment count of every post.
func convertPosts(
	ctx context.Context,
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	posts []entity.Post,
) ([]model.Post, error) {
	authorIDs := []string{}
	for _, p := range posts {
		authorIDs = append(authorIDs, p.AuthorID)
	}

	authors, err := profileRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	authorMap := map[string]entity.Profile{}
	for _, a := range authors {
		authorMap[a.ID] = a
	}

	result := []model.Post{}
	for _, p := range posts {
		commentsCount, err := postRepo.CountComments(ctx, p.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count comments of post %s: %v", p.ID, err)
			return nil, errorx.Unknown
		}

		author := model.ShortProfile{ID: p.AuthorID}
		if a, ok := authorMap[p.AuthorID]; ok {
			author = model.ConvertShortProfile(&a)
		}

		result = append(result, model.ConvertPost(&p, author, commentsCount))
	}

	return result, nil
}
