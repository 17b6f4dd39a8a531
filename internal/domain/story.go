package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lyricroom/backend/internal/domain/ledger"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/xcontext"
)

type StoryDomain interface {
	GetActive(context.Context, *model.GetActiveStoriesRequest) (*model.GetActiveStoriesResponse, error)
	Get(context.Context, *model.GetStoryRequest) (*model.GetStoryResponse, error)
	Create(context.Context, *model.CreateStoryRequest) (*model.CreateStoryResponse, error)
	View(context.Context, *model.ViewStoryRequest) (*model.ViewStoryResponse, error)
	Delete(context.Context, *model.DeleteStoryRequest) (*model.DeleteStoryResponse, error)
}

type storyDomain struct {
	storyRepo repository.StoryRepository
	ledger    ledger.Ledger
}

func NewStoryDomain(storyRepo repository.StoryRepository, ledger ledger.Ledger) *storyDomain {
	return &storyDomain{storyRepo: storyRepo, ledger: ledger}
}

func (d *storyDomain) GetActive(
	ctx context.Context, req *model.GetActiveStoriesRequest,
) (*model.GetActiveStoriesResponse, error) {
	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	stories, err := d.storyRepo.GetActiveList(ctx, time.Now(), offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active stories: %v", err)
		return nil, errorx.Unknown
	}

	clientStories := []model.Story{}
	for _, s := range stories {
		clientStories = append(clientStories, model.ConvertStory(&s))
	}

	return &model.GetActiveStoriesResponse{Stories: clientStories}, nil
}

func (d *storyDomain) Get(ctx context.Context, req *model.GetStoryRequest) (*model.GetStoryResponse, error) {
	story, err := d.getActive(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.GetStoryResponse(model.ConvertStory(story))
	return &resp, nil
}

func (d *storyDomain) Create(
	ctx context.Context, req *model.CreateStoryRequest,
) (*model.CreateStoryResponse, error) {
	authorID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Image == "" {
		return nil, errorx.New(errorx.BadRequest, "Story must have an image")
	}

	now := time.Now()
	expiresAt := req.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(xcontext.Configs(ctx).Story.TTL)
	}

	if !expiresAt.After(now) {
		return nil, errorx.New(errorx.BadRequest, "Expiration must be in the future")
	}

	story := &entity.Story{
		Base:      entity.Base{ID: uuid.NewString()},
		AuthorID:  authorID,
		Image:     req.Image,
		ExpiresAt: expiresAt,
	}

	if err := d.storyRepo.Create(ctx, story); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create story: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.CreateStoryResponse(model.ConvertStory(story))
	return &resp, nil
}

// View counts the viewer once. Viewing again keeps the counter.
func (d *storyDomain) View(ctx context.Context, req *model.ViewStoryRequest) (*model.ViewStoryResponse, error) {
	userID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := d.getActive(ctx, req.ID); err != nil {
		return nil, err
	}

	if _, err := d.ledger.Add(ctx, ledger.StoryViews, req.ID, userID); err != nil {
		return nil, err
	}

	story, err := d.storyRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Story not found")
	}

	resp := model.ViewStoryResponse(model.ConvertStory(story))
	return &resp, nil
}

func (d *storyDomain) Delete(
	ctx context.Context, req *model.DeleteStoryRequest,
) (*model.DeleteStoryResponse, error) {
	story, err := d.storyRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Story not found")
	}

	if story.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the story")
	}

	if err := d.ledger.Purge(ctx, ledger.KindStory, req.ID); err != nil {
		return nil, err
	}

	return &model.DeleteStoryResponse{Message: "Story deleted"}, nil
}

// getActive treats an expired story as missing.
func (d *storyDomain) getActive(ctx context.Context, id string) (*entity.Story, error) {
	story, err := d.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Story not found")
	}

	if !time.Now().Before(story.ExpiresAt) {
		return nil, errorx.New(errorx.NotFound, "Story not found")
	}

	return story, nil
}
