package main

import (
	"github.com/lyricroom/backend/internal/domain/search"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

const reindexBatchSize = 200

func (s *srv) startReindex(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	s.loadIndexer()
	defer s.indexer.Close()
	s.loadRepos()

	total := 0
	for offset := 0; ; offset += reindexBatchSize {
		lyrics, err := s.lyricsRepo.GetAll(s.ctx, offset, reindexBatchSize)
		if err != nil {
			return err
		}

		for _, l := range lyrics {
			err := s.indexer.IndexLyrics(s.ctx, l.ID, search.LyricsData{
				Title:  l.Title,
				Artist: l.Artist,
				Lyrics: l.Lyrics,
			})
			if err != nil {
				xcontext.Logger(s.ctx).Warnf("Cannot index lyrics %s: %v", l.ID, err)
				continue
			}

			total++
		}

		if len(lyrics) < reindexBatchSize {
			break
		}
	}

	xcontext.Logger(s.ctx).Infof("Indexed %d lyrics", total)
	return nil
}
