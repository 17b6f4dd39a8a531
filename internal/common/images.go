package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"

	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/storage"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/nfnt/resize"
)

type size struct {
	w int
	h int
}

func (s size) String() string {
	return fmt.Sprintf("%dx%d", s.w, s.h)
}

var (
	AvatarSizes = []size{
		{w: 512, h: 512},
		{w: 128, h: 128},
		{w: 32, h: 32},
	}
)

// ProcessImage reads the multipart file under key, resizes it to every avatar
// size and uploads the results in the same order as AvatarSizes.
func ProcessImage(ctx context.Context, fileStorage storage.Storage, key string) ([]*storage.UploadResponse, error) {
	file, header, err := formFile(ctx, key)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	img, err := decodeImg(mime, file)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid image: %v", err)
	}

	objs := make([]*storage.UploadObject, 0, len(AvatarSizes))
	for _, size := range AvatarSizes {
		img := resize.Resize(uint(size.w), uint(size.h), img, resize.Lanczos2)
		b, err := encodeImg(mime, img)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
			return nil, errorx.Unknown
		}

		objs = append(objs, &storage.UploadObject{
			Prefix:   "avatars",
			FileName: fmt.Sprintf("%s-%s", size, header.Filename),
			Mime:     mime,
			Data:     b,
		})
	}

	uresp, err := fileStorage.BulkUpload(ctx, objs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return uresp, nil
}

// UploadImage stores the multipart file under key as it is.
func UploadImage(ctx context.Context, fileStorage storage.Storage, key, prefix string) (*storage.UploadResponse, error) {
	file, header, err := formFile(ctx, key)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	if !isImage(mime) {
		return nil, errorx.New(errorx.BadRequest, "We just accept jpeg, gif or png")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot read the file")
	}

	resp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Prefix:   prefix,
		FileName: header.Filename,
		Mime:     mime,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}

func formFile(ctx context.Context, key string) (multipart.File, *multipart.FileHeader, error) {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return nil, nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, nil, errorx.New(errorx.BadRequest, "Error retrieving the File")
	}

	return file, header, nil
}

func isImage(mime string) bool {
	switch mime {
	case "image/jpeg", "image/png", "image/gif", "application/octet-stream":
		return true
	}
	return false
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("we just accept jpeg, gif or png")
	}
	return img, err
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)

	var err error
	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png", "application/octet-stream":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("we just accept jpeg, gif or png")
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
