package domain

import (
	"context"

	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/pkg/storage"
)

type FileDomain interface {
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

type fileDomain struct {
	storage storage.Storage
}

func NewFileDomain(storage storage.Storage) *fileDomain {
	return &fileDomain{storage: storage}
}

func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	if _, err := resolveActor(ctx, ""); err != nil {
		return nil, err
	}

	resp, err := common.UploadImage(ctx, d.storage, "image", "images")
	if err != nil {
		return nil, err
	}

	return &model.UploadImageResponse{Url: resp.Url}, nil
}
