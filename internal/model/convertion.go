package model

import (
	"strconv"
	"time"

	"github.com/lyricroom/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(DefaultTimeLayout)
}

func ConvertProfile(profile *entity.Profile, postsCount int64, includeSensitive bool) Profile {
	if profile == nil {
		return Profile{}
	}

	p := Profile{
		ID:             profile.ID,
		Username:       profile.Username,
		Avatar:         profile.Avatar,
		Bio:            profile.Bio,
		Role:           string(profile.Role),
		FollowersCount: profile.FollowersCount,
		FollowingCount: profile.FollowingCount,
		PostsCount:     postsCount,
		CreatedAt:      formatTime(profile.CreatedAt),
		UpdatedAt:      formatTime(profile.UpdatedAt),
	}

	if includeSensitive {
		p.Email = profile.Email
	}

	return p
}

func ConvertShortProfile(profile *entity.Profile) ShortProfile {
	if profile == nil {
		return ShortProfile{}
	}

	return ShortProfile{
		ID:       profile.ID,
		Username: profile.Username,
		Avatar:   profile.Avatar,
	}
}

func ConvertPost(post *entity.Post, author ShortProfile, commentsCount int64) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:            post.ID,
		AuthorID:      post.AuthorID,
		Author:        author,
		Content:       post.Content,
		Image:         post.Image,
		Likes:         post.Likes,
		Shares:        post.Shares,
		CommentsCount: commentsCount,
		CreatedAt:     formatTime(post.CreatedAt),
		UpdatedAt:     formatTime(post.UpdatedAt),
	}
}

func ConvertComment(comment *entity.PostComment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        strconv.FormatInt(comment.ID, 10),
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: formatTime(comment.CreatedAt),
	}
}

func ConvertStory(story *entity.Story) Story {
	if story == nil {
		return Story{}
	}

	return Story{
		ID:        story.ID,
		AuthorID:  story.AuthorID,
		Image:     story.Image,
		Views:     story.Views,
		ExpiresAt: formatTime(story.ExpiresAt),
		CreatedAt: formatTime(story.CreatedAt),
	}
}

func ConvertMusic(music *entity.Music) Music {
	if music == nil {
		return Music{}
	}

	genre := []string(music.Genre)
	if genre == nil {
		genre = []string{}
	}

	return Music{
		ID:         music.ID,
		Title:      music.Title,
		Artist:     music.Artist,
		Album:      music.Album,
		Duration:   music.Duration,
		ImageURL:   music.ImageURL,
		AudioURL:   music.AudioURL,
		SpotifyID:  music.SpotifyID.String,
		Genre:      genre,
		Plays:      music.Plays,
		LikesCount: music.LikesCount,
		UploadedBy: music.UploadedBy,
		CreatedAt:  formatTime(music.CreatedAt),
	}
}

func ConvertLyrics(lyrics *entity.Lyrics) Lyrics {
	if lyrics == nil {
		return Lyrics{}
	}

	translations := []Translation{}
	for _, t := range lyrics.Translations {
		translations = append(translations, Translation{Language: t.Language, Lyrics: t.Lyrics})
	}

	return Lyrics{
		ID:           lyrics.ID,
		MusicID:      lyrics.MusicID,
		Title:        lyrics.Title,
		Artist:       lyrics.Artist,
		Lyrics:       lyrics.Lyrics,
		Language:     lyrics.Language,
		Translations: translations,
		Synced:       lyrics.Synced,
		SyncedLyrics: ConvertSyncedLines(lyrics.SyncedLyrics),
		Source:       lyrics.Source,
		Views:        lyrics.Views,
		CreatedAt:    formatTime(lyrics.CreatedAt),
		UpdatedAt:    formatTime(lyrics.UpdatedAt),
	}
}

func ConvertSyncedLines(lines []entity.SyncedLine) []SyncedLine {
	result := []SyncedLine{}
	for _, l := range lines {
		result = append(result, SyncedLine{Timestamp: l.Timestamp, Text: l.Text})
	}
	return result
}

func ConvertSpotifyIntegration(integration *entity.SpotifyIntegration) SpotifyIntegration {
	if integration == nil {
		return SpotifyIntegration{}
	}

	linkedTracks := []string(integration.LinkedTracks)
	if linkedTracks == nil {
		linkedTracks = []string{}
	}

	return SpotifyIntegration{
		ID:           integration.ID,
		UserID:       integration.UserID,
		UserType:     string(integration.UserType),
		SpotifyID:    integration.SpotifyID,
		DisplayName:  integration.DisplayName,
		Email:        integration.Email,
		ProfileImage: integration.ProfileImage,
		Followers:    integration.Followers,
		LinkedTracks: linkedTracks,
		ExpiresAt:    formatTime(integration.ExpiresAt),
		CreatedAt:    formatTime(integration.CreatedAt),
	}
}
