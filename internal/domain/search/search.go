package search

import (
	"context"
	"errors"
	"path"

	"github.com/blevesearch/bleve/v2"
	"github.com/lyricroom/backend/pkg/logger"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

const LyricsDoc = "lyrics"

type LyricsData struct {
	Title  string
	Artist string
	Lyrics string
}

type Indexer interface {
	IndexLyrics(ctx context.Context, id string, data LyricsData) error
	DeleteLyrics(ctx context.Context, id string) error
	SearchLyrics(ctx context.Context, query string, offset, limit int) ([]string, error)
	Close()
}

type bleveIndex struct {
	logger   logger.Logger
	indexDir string
	indexes  *xsync.MapOf[string, bleve.Index]
}

// NewBleveIndex keeps one bleve index per document kind under the configured
// index directory. Indexes live in memory when no directory is configured.
func NewBleveIndex(ctx context.Context) *bleveIndex {
	return &bleveIndex{
		logger:   xcontext.Logger(ctx),
		indexDir: xcontext.Configs(ctx).SearchServer.IndexDir,
		indexes:  xsync.NewMapOf[bleve.Index](),
	}
}

func (i *bleveIndex) IndexLyrics(ctx context.Context, id string, data LyricsData) error {
	return i.index(LyricsDoc, id, data)
}

func (i *bleveIndex) DeleteLyrics(ctx context.Context, id string) error {
	return i.delete(LyricsDoc, id)
}

func (i *bleveIndex) SearchLyrics(ctx context.Context, query string, offset, limit int) ([]string, error) {
	return i.search(LyricsDoc, query, offset, limit)
}

func (i *bleveIndex) index(document, id string, data any) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	record, err := index.Document(id)
	if err != nil {
		return err
	}

	if record != nil {
		if err := index.Delete(id); err != nil {
			return err
		}
	}

	return index.Index(id, data)
}

func (i *bleveIndex) delete(document, id string) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	return index.Delete(id)
}

func (i *bleveIndex) search(document, query string, offset, limit int) ([]string, error) {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, offset, false)
	searchResults, err := index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, match := range searchResults.Hits {
		ids = append(ids, match.ID)
	}

	return ids, nil
}

func (i *bleveIndex) Close() {
	i.logger.Infof("Closing all indexers...")

	i.indexes.Range(func(document string, index bleve.Index) bool {
		if err := index.Close(); err != nil {
			i.logger.Errorf("Cannot close indexer %s: %v", document, err)
		}

		return true
	})

	i.logger.Infof("Closing all indexers...done")
}

func (i *bleveIndex) getIndexByDocument(document string) (bleve.Index, error) {
	if index, ok := i.indexes.Load(document); ok {
		return index, nil
	}

	index, err := i.open(document)
	if err != nil {
		return nil, err
	}

	actual, loaded := i.indexes.LoadOrStore(document, index)
	if loaded {
		index.Close()
	}

	return actual, nil
}

func (i *bleveIndex) open(document string) (bleve.Index, error) {
	i.logger.Infof("A new document index is added: %s", document)

	if i.indexDir == "" {
		return bleve.NewMemOnly(bleve.NewIndexMapping())
	}

	indexPath := path.Join(i.indexDir, document)
	index, err := bleve.New(indexPath, bleve.NewIndexMapping())
	if err != nil {
		if !errors.Is(err, bleve.ErrorIndexPathExists) {
			return nil, err
		}

		return bleve.Open(indexPath)
	}

	return index, nil
}
