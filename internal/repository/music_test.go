package repository

import (
	"testing"

	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_musicRepository_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewMusicRepository(&testutil.MockRedisClient{})

	rock := testutil.SampleMusic(ctx, &entity.Music{
		Title:  "Paranoid",
		Artist: "Black Sabbath",
		Genre:  entity.Array[string]{"rock", "metal"},
		Plays:  10,
	})
	pop := testutil.SampleMusic(ctx, &entity.Music{
		Title:  "Thriller",
		Artist: "Michael Jackson",
		Genre:  entity.Array[string]{"pop"},
		Plays:  30,
	})
	popRock := testutil.SampleMusic(ctx, &entity.Music{
		Title:  "Rock With You",
		Artist: "Michael Jackson",
		Genre:  entity.Array[string]{"pop", "rock"},
		Plays:  20,
	})

	ids := func(musics []entity.Music) []string {
		var result []string
		for _, m := range musics {
			result = append(result, m.ID)
		}
		return result
	}

	result, err := repo.GetList(ctx, GetListMusicFilter{Limit: 50})
	require.NoError(t, err)
	require.Equal(t, []string{pop.ID, popRock.ID, rock.ID}, ids(result))

	result, err = repo.GetList(ctx, GetListMusicFilter{Genre: "rock", Limit: 50})
	require.NoError(t, err)
	require.Equal(t, []string{popRock.ID, rock.ID}, ids(result))

	result, err = repo.GetList(ctx, GetListMusicFilter{Artist: "jackson", Limit: 50})
	require.NoError(t, err)
	require.Equal(t, []string{pop.ID, popRock.ID}, ids(result))

	result, err = repo.GetList(ctx, GetListMusicFilter{Q: "rock", Artist: "michael", Limit: 50})
	require.NoError(t, err)
	require.Equal(t, []string{popRock.ID}, ids(result))

	result, err = repo.GetList(ctx, GetListMusicFilter{Limit: 1})
	require.NoError(t, err)
	require.Equal(t, []string{pop.ID}, ids(result))

	got, err := repo.GetByID(ctx, rock.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Array[string]{"rock", "metal"}, got.Genre)
}
