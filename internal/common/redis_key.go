package common

import "fmt"

const RedisKeyTrendingMusic = "trending:music"

func RedisKeyProfile(profileID string) string {
	return fmt.Sprintf("cache:profile:%s", profileID)
}

func RedisKeyPost(postID string) string {
	return fmt.Sprintf("cache:post:%s", postID)
}

func RedisKeyMusic(musicID string) string {
	return fmt.Sprintf("cache:music:%s", musicID)
}

func RedisKeyStory(storyID string) string {
	return fmt.Sprintf("cache:story:%s", storyID)
}

func RedisKeyLyrics(lyricsID string) string {
	return fmt.Sprintf("cache:lyrics:%s", lyricsID)
}
