package domain

import (
	"context"

	"github.com/lyricroom/backend/internal/domain/ledger"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/xcontext"
)

type AdminDomain interface {
	GetProfiles(context.Context, *model.AdminGetProfilesRequest) (*model.AdminGetProfilesResponse, error)
	GetPosts(context.Context, *model.AdminGetPostsRequest) (*model.AdminGetPostsResponse, error)
	GetStories(context.Context, *model.AdminGetStoriesRequest) (*model.AdminGetStoriesResponse, error)
	DeleteProfile(context.Context, *model.AdminDeleteProfileRequest) (*model.AdminDeleteProfileResponse, error)
	DeletePost(context.Context, *model.AdminDeletePostRequest) (*model.AdminDeletePostResponse, error)
	DeleteStory(context.Context, *model.AdminDeleteStoryRequest) (*model.AdminDeleteStoryResponse, error)
}

type adminDomain struct {
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	storyRepo   repository.StoryRepository
	ledger      ledger.Ledger
}

func NewAdminDomain(
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	storyRepo repository.StoryRepository,
	ledger ledger.Ledger,
) *adminDomain {
	return &adminDomain{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		storyRepo:   storyRepo,
		ledger:      ledger,
	}
}

func (d *adminDomain) GetProfiles(
	ctx context.Context, req *model.AdminGetProfilesRequest,
) (*model.AdminGetProfilesResponse, error) {
	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	profiles, err := d.profileRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profile list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Profile{}
	for _, p := range profiles {
		postsCount, err := d.postRepo.CountByAuthor(ctx, p.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count posts of %s: %v", p.ID, err)
			return nil, errorx.Unknown
		}

		result = append(result, model.ConvertProfile(&p, postsCount, true))
	}

	return &model.AdminGetProfilesResponse{Profiles: result}, nil
}

func (d *adminDomain) GetPosts(
	ctx context.Context, req *model.AdminGetPostsRequest,
) (*model.AdminGetPostsResponse, error) {
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

	return &model.AdminGetPostsResponse{Posts: clientPosts}, nil
}

// GetStories lists every story, newest first. Expired stories stay listed
// until the purge job removes them.
func (d *adminDomain) GetStories(
	ctx context.Context, req *model.AdminGetStoriesRequest,
) (*model.AdminGetStoriesResponse, error) {
	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	stories, err := d.storyRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get story list: %v", err)
		return nil, errorx.Unknown
	}

	clientStories := []model.Story{}
	for _, s := range stories {
		clientStories = append(clientStories, model.ConvertStory(&s))
	}

	return &model.AdminGetStoriesResponse{Stories: clientStories}, nil
}

// DeleteProfile removes the profile with everything it authored and every
// trace it left on other aggregates.
func (d *adminDomain) DeleteProfile(
	ctx context.Context, req *model.AdminDeleteProfileRequest,
) (*model.AdminDeleteProfileResponse, error) {
	if err := d.ledger.Purge(ctx, ledger.KindProfile, req.ID); err != nil {
		return nil, err
	}

	return &model.AdminDeleteProfileResponse{Success: true}, nil
}

func (d *adminDomain) DeletePost(
	ctx context.Context, req *model.AdminDeletePostRequest,
) (*model.AdminDeletePostResponse, error) {
	if err := d.ledger.Purge(ctx, ledger.KindPost, req.ID); err != nil {
		return nil, err
	}

	return &model.AdminDeletePostResponse{Success: true}, nil
}

func (d *adminDomain) DeleteStory(
	ctx context.Context, req *model.AdminDeleteStoryRequest,
) (*model.AdminDeleteStoryResponse, error) {
	if err := d.ledger.Purge(ctx, ledger.KindStory, req.ID); err != nil {
		return nil, err
	}

	return &model.AdminDeleteStoryResponse{Success: true}, nil
}
