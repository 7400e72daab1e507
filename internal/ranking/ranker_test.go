package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/cog-motif-finder/index"
	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/model"
	"github.com/gcbaptista/cog-motif-finder/store"
)

const target = "COG0001"

func activityTable() *store.ActivityTable {
	return store.ParseActivityTable(
		"COG0002 E acetylglutamate\n" +
			"COG0003 H biotin\n" +
			"COG0004 K sigma factor\n" +
			"COG0005 E dehydrogenase\n")
}

func buildBuckets(minGenomes int, occurrences map[model.Motif][]string, order []model.Motif) *index.OccurrenceBuckets {
	ix := index.NewOccurrenceIndex()
	for _, motif := range order {
		for _, genome := range occurrences[motif] {
			ix.Add(motif, genome)
		}
	}
	return index.BuildBuckets(ix, minGenomes)
}

func TestRank(t *testing.T) {
	order := []model.Motif{"COG0002 COG0001 COG0003", "COG0001 COG0003 COG0004", "COG0005 COG0002 COG0001"}
	buckets := buildBuckets(1, map[model.Motif][]string{
		order[0]: {"1", "2", "3"},
		order[1]: {"2"},
		order[2]: {"3"},
	}, order)

	ranker := NewRanker(activityTable(), model.DefaultActivityCatalog(), 0)
	summary, err := ranker.Rank(3, target, buckets)
	require.NoError(t, err)

	// 3*1*2 + 1*2*2
	assert.Equal(t, 10, summary.TotalMarkers)
	require.Len(t, summary.Top, 3)

	assert.Equal(t, "E", summary.Top[0].Code)
	assert.Equal(t, 5, summary.Top[0].Weight)
	assert.Equal(t, 50.0, summary.Top[0].Percentage)
	assert.Equal(t, "METABOLISM Amino acid transport and metabolism", summary.Top[0].Description)

	assert.Equal(t, "H", summary.Top[1].Code)
	assert.Equal(t, 40.0, summary.Top[1].Percentage)

	assert.Equal(t, "K", summary.Top[2].Code)
	assert.Equal(t, 10.0, summary.Top[2].Percentage)
	assert.Equal(t, 2, summary.Top[2].Rank)

	for _, rank := range summary.Top {
		assert.LessOrEqual(t, rank.Percentage, 100.0)
	}
}

func TestRank_TopNLimitAndTies(t *testing.T) {
	order := []model.Motif{"COG0003 COG0001 COG0002", "COG0004 COG0001 COG0009"}
	buckets := buildBuckets(1, map[model.Motif][]string{
		order[0]: {"1"},
		order[1]: {"1"},
	}, order)

	summary, err := NewRanker(activityTable(), nil, 2).Rank(3, target, buckets)
	require.NoError(t, err)

	require.Len(t, summary.Top, 2)
	assert.Equal(t, []string{"H", "E"}, []string{summary.Top[0].Code, summary.Top[1].Code},
		"equal weights keep first-seen order")
	assert.Equal(t, 25.0, summary.Top[0].Percentage)
}

func TestRank_TiesFollowBucketDiscoveryOrder(t *testing.T) {
	// The count-1 bucket is discovered before the count-2 bucket, so H is met
	// before K even though K's motif has the higher count.
	order := []model.Motif{"COG0003 COG0001 COG0003", "COG0004 COG0001 COG0009"}
	buckets := buildBuckets(1, map[model.Motif][]string{
		order[0]: {"1"},
		order[1]: {"1", "2"},
	}, order)

	summary, err := NewRanker(activityTable(), nil, 3).Rank(3, target, buckets)
	require.NoError(t, err)

	assert.Equal(t, 6, summary.TotalMarkers)
	require.Len(t, summary.Top, 2)
	assert.Equal(t, []string{"H", "K"}, []string{summary.Top[0].Code, summary.Top[1].Code})
	assert.Equal(t, 2, summary.Top[0].Weight)
	assert.Equal(t, 2, summary.Top[1].Weight)
	assert.Equal(t, 33.3, summary.Top[1].Percentage)
}

func TestRank_FewerCategoriesThanTopN(t *testing.T) {
	order := []model.Motif{"COG0001 COG0002"}
	buckets := buildBuckets(1, map[model.Motif][]string{order[0]: {"1", "2"}}, order)

	summary, err := NewRanker(activityTable(), nil, 3).Rank(2, target, buckets)
	require.NoError(t, err)

	require.Len(t, summary.Top, 1)
	assert.Equal(t, 100.0, summary.Top[0].Percentage)
}

func TestRank_TargetRepeatedInMotifIsSkipped(t *testing.T) {
	order := []model.Motif{"COG0001 COG0002 COG0001"}
	buckets := buildBuckets(1, map[model.Motif][]string{order[0]: {"1"}}, order)

	summary, err := NewRanker(activityTable(), nil, 3).Rank(3, target, buckets)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalMarkers)
	require.Len(t, summary.Top, 1)
	assert.Equal(t, 1, summary.Top[0].Weight)
	assert.Equal(t, 50.0, summary.Top[0].Percentage)
}

func TestRank_NoQualifyingMotifs(t *testing.T) {
	buckets := buildBuckets(5, map[model.Motif][]string{"COG0001 COG0002": {"1"}}, []model.Motif{"COG0001 COG0002"})

	_, err := NewRanker(activityTable(), nil, 3).Rank(2, target, buckets)
	assert.ErrorIs(t, err, errors.ErrNoQualifyingMotifs)
}

func TestRank_MotifLengthOneHasNoNeighbours(t *testing.T) {
	buckets := buildBuckets(1, map[model.Motif][]string{"COG0001": {"1", "2"}}, []model.Motif{"COG0001"})

	_, err := NewRanker(activityTable(), nil, 3).Rank(1, target, buckets)
	assert.ErrorIs(t, err, errors.ErrNoQualifyingMotifs)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 33.3, Percentage(1, 3))
	assert.Equal(t, 66.7, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(7, 7))
	assert.Equal(t, 1.2, Percentage(1, 80))
	assert.Equal(t, 0.1, Percentage(1, 1000))
	assert.Equal(t, 12.5, Percentage(1, 8))
	assert.Equal(t, "33.3%", FormatPercentage(Percentage(1, 3)))
	assert.Equal(t, "50.0%", FormatPercentage(50))
}

func TestTally(t *testing.T) {
	tally := NewTally()
	tally.Add("K", 1)
	tally.Add("E", 2)
	tally.Add("K", 1)
	tally.Add("H", 1)

	assert.Equal(t, 2, tally.Weight("K"))
	assert.Equal(t, []string{"K", "E", "H"}, tally.Ranked())
}
