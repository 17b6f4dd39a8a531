package storage

import (
	"strings"
	"testing"

	"github.com/lyricroom/backend/config"
	"github.com/stretchr/testify/require"
)

func Test_s3Storage_generateUploadURL(t *testing.T) {
	stg, err := NewS3Storage(config.S3Configs{
		Region:         "auto",
		Endpoint:       "http://localhost:9000",
		PublicEndpoint: "https://cdn.example.com",
		Bucket:         "images",
	})
	require.NoError(t, err)

	s := stg.(*s3Storage)

	resp := s.generateUploadURL(&UploadObject{Prefix: "avatars", FileName: "me.png"})
	require.True(t, strings.HasPrefix(resp.FileName, "avatars/"))
	require.True(t, strings.HasSuffix(resp.FileName, "-me.png"))
	require.Equal(t, "https://cdn.example.com/images/"+resp.FileName, resp.Url)

	resp = s.generateUploadURL(&UploadObject{Bucket: "other", Prefix: "posts", FileName: "a.jpg"})
	require.True(t, strings.HasPrefix(resp.Url, "https://cdn.example.com/other/posts/"))
}
