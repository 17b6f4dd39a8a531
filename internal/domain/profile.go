package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/domain/ledger"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/storage"
	"github.com/lyricroom/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ProfileDomain interface {
	Create(context.Context, *model.CreateProfileRequest) (*model.CreateProfileResponse, error)
	GetMe(context.Context, *model.GetMyProfileRequest) (*model.GetMyProfileResponse, error)
	GetByUsername(context.Context, *model.GetProfileByUsernameRequest) (*model.GetProfileByUsernameResponse, error)
	Update(context.Context, *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
	Follow(context.Context, *model.FollowProfileRequest) (*model.FollowProfileResponse, error)
	Unfollow(context.Context, *model.UnfollowProfileRequest) (*model.UnfollowProfileResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
	GetSavedPosts(context.Context, *model.GetSavedPostsRequest) (*model.GetSavedPostsResponse, error)
	UploadAvatar(context.Context, *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
}

type profileDomain struct {
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	ledger      ledger.Ledger
	storage     storage.Storage
}

func NewProfileDomain(
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	ledger ledger.Ledger,
	storage storage.Storage,
) *profileDomain {
	return &profileDomain{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		ledger:      ledger,
		storage:     storage,
	}
}

func (d *profileDomain) Create(
	ctx context.Context, req *model.CreateProfileRequest,
) (*model.CreateProfileResponse, error) {
	if err := checkUsername(req.Username); err != nil {
		return nil, err
	}

	if err := checkEmail(req.Email); err != nil {
		return nil, err
	}

	if err := d.checkUsernameAvailable(ctx, req.Username); err != nil {
		return nil, err
	}

	_, err := d.profileRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email is already used")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get profile by email: %v", err)
		return nil, errorx.Unknown
	}

	profile := &entity.Profile{
		Base:     entity.Base{ID: uuid.NewString()},
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
		Bio:      req.Bio,
		Role:     entity.ProfileRoleUser,
	}

	if profile.Avatar == "" {
		profile.Avatar = entity.DefaultAvatar
	}

	if err := d.profileRepo.Create(ctx, profile); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create profile: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{ID: profile.ID, Username: profile.Username},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateProfileResponse{
		Profile:     model.ConvertProfile(profile, 0, true),
		AccessToken: accessToken,
	}, nil
}

func (d *profileDomain) GetMe(
	ctx context.Context, req *model.GetMyProfileRequest,
) (*model.GetMyProfileResponse, error) {
	profile, err := d.profileRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, notFoundOr(ctx, err, "Profile not found")
	}

	postsCount, err := d.postRepo.CountByAuthor(ctx, profile.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMyProfileResponse(model.ConvertProfile(profile, postsCount, true))
	return &resp, nil
}

func (d *profileDomain) GetByUsername(
	ctx context.Context, req *model.GetProfileByUsernameRequest,
) (*model.GetProfileByUsernameResponse, error) {
	profile, err := d.profileRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Profile not found")
	}

	postsCount, err := d.postRepo.CountByAuthor(ctx, profile.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetProfileByUsernameResponse(model.ConvertProfile(
		profile, postsCount, profile.ID == xcontext.RequestUserID(ctx)))
	return &resp, nil
}

func (d *profileDomain) Update(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	profile, err := d.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Profile not found")
	}

	update := entity.Profile{}
	if req.Username != nil && *req.Username != profile.Username {
		if err := checkUsername(*req.Username); err != nil {
			return nil, err
		}

		if err := d.checkUsernameAvailable(ctx, *req.Username); err != nil {
			return nil, err
		}

		update.Username = *req.Username
	}

	if req.Avatar != nil {
		update.Avatar = *req.Avatar
	}

	updateBio := req.Bio != nil
	if updateBio {
		update.Bio = *req.Bio
	}

	if err := d.profileRepo.UpdateByID(ctx, userID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update profile: %v", err)
		return nil, errorx.Unknown
	}

	// Updates skips zero values, an emptied bio is written separately.
	if updateBio && *req.Bio == "" {
		if err := d.profileRepo.ClearBio(ctx, userID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot clear bio: %v", err)
			return nil, errorx.Unknown
		}
	}

	profile, err = d.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Profile not found")
	}

	postsCount, err := d.postRepo.CountByAuthor(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.UpdateProfileResponse(model.ConvertProfile(profile, postsCount, true))
	return &resp, nil
}

func (d *profileDomain) Follow(
	ctx context.Context, req *model.FollowProfileRequest,
) (*model.FollowProfileResponse, error) {
	followerID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	target, err := d.profileRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Profile not found")
	}

	result, err := d.ledger.Follow(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}

	return &model.FollowProfileResponse{
		Message:        "Followed successfully",
		Following:      result.Following,
		FollowersCount: result.FollowersCount,
		FollowingCount: result.FollowingCount,
	}, nil
}

func (d *profileDomain) Unfollow(
	ctx context.Context, req *model.UnfollowProfileRequest,
) (*model.UnfollowProfileResponse, error) {
	followerID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	target, err := d.profileRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Profile not found")
	}

	result, err := d.ledger.Unfollow(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}

	return &model.UnfollowProfileResponse{
		Message:        "Unfollowed successfully",
		Following:      result.Following,
		FollowersCount: result.FollowersCount,
		FollowingCount: result.FollowingCount,
	}, nil
}

func (d *profileDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	profile, err := d.profileRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Profile not found")
	}

	followerIDs, err := d.profileRepo.Follows().Members(ctx, profile.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	profiles, err := d.shortProfiles(ctx, followerIDs)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowersResponse{Profiles: profiles}, nil
}

func (d *profileDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	profile, err := d.profileRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Profile not found")
	}

	followeeIDs, err := d.profileRepo.Follows().ListByActor(ctx, profile.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following: %v", err)
		return nil, errorx.Unknown
	}

	profiles, err := d.shortProfiles(ctx, followeeIDs)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingResponse{Profiles: profiles}, nil
}

func (d *profileDomain) GetSavedPosts(
	ctx context.Context, req *model.GetSavedPostsRequest,
) (*model.GetSavedPostsResponse, error) {
	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	postIDs, err := d.postRepo.Saves().ListByActor(ctx, xcontext.RequestUserID(ctx), offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get saved posts: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetByIDs(ctx, postIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := convertPosts(ctx, d.profileRepo, d.postRepo, orderByIDs(postIDs, posts, postKey))
	if err != nil {
		return nil, err
	}

	return &model.GetSavedPostsResponse{Posts: clientPosts}, nil
}

func (d *profileDomain) UploadAvatar(
	ctx context.Context, req *model.UploadAvatarRequest,
) (*model.UploadAvatarResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if _, err := d.profileRepo.GetByID(ctx, userID); err != nil {
		return nil, notFoundOr(ctx, err, "Profile not found")
	}

	images, err := common.ProcessImage(ctx, d.storage, "image")
	if err != nil {
		return nil, err
	}

	if len(images) == 0 {
		return nil, errorx.Unknown
	}

	if err := d.profileRepo.UpdateByID(ctx, userID, entity.Profile{Avatar: images[0].Url}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update avatar: %v", err)
		return nil, errorx.Unknown
	}

	sizes := []string{}
	for _, img := range images {
		sizes = append(sizes, img.Url)
	}

	return &model.UploadAvatarResponse{Avatar: images[0].Url, Sizes: sizes}, nil
}

func (d *profileDomain) checkUsernameAvailable(ctx context.Context, username string) error {
	_, err := d.profileRepo.GetByUsername(ctx, username)
	if err == nil {
		return errorx.New(errorx.AlreadyExists, "Username is already taken")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get profile by username: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *profileDomain) shortProfiles(ctx context.Context, ids []string) ([]model.ShortProfile, error) {
	profiles, err := d.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profiles: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.ShortProfile{}
	for _, p := range orderByIDs(ids, profiles, profileKey) {
		result = append(result, model.ConvertShortProfile(&p))
	}

	return result, nil
}
