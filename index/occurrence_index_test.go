package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/cog-motif-finder/model"
)

const (
	motifA = model.Motif("COG0002 COG0001 COG0003")
	motifB = model.Motif("COG0001 COG0003 COG0004")
	motifC = model.Motif("COG0009 COG0001 COG0002")
)

func TestOccurrenceIndex_AddIsIdempotentPerGenome(t *testing.T) {
	ix := NewOccurrenceIndex()

	ix.Add(motifA, "000001")
	ix.Add(motifA, "000001")
	ix.Add(motifA, "000002")

	assert.Equal(t, 2, ix.Count(motifA))
	assert.True(t, ix.Contains(motifA, "000002"))
	assert.False(t, ix.Contains(motifA, "000003"))
	assert.Equal(t, 0, ix.Count(motifB))
	assert.Equal(t, 1, ix.Len())
}

func TestOccurrenceIndex_DiscoveryOrder(t *testing.T) {
	ix := NewOccurrenceIndex()
	ix.Add(motifB, "1")
	ix.Add(motifA, "1")
	ix.Add(motifB, "2")
	ix.Add(motifC, "3")

	assert.Equal(t, []model.Motif{motifB, motifA, motifC}, ix.Motifs())
}

func TestOccurrenceIndex_Merge(t *testing.T) {
	left := NewOccurrenceIndex()
	left.Add(motifA, "1")

	right := NewOccurrenceIndex()
	right.Add(motifA, "1")
	right.Add(motifA, "2")
	right.Add(motifB, "3")

	left.Merge(right)

	assert.Equal(t, 2, left.Count(motifA))
	assert.Equal(t, 1, left.Count(motifB))
	assert.Equal(t, []model.Motif{motifA, motifB}, left.Motifs())
}

func TestBuildBuckets(t *testing.T) {
	ix := NewOccurrenceIndex()
	for _, g := range []string{"1", "2", "3"} {
		ix.Add(motifA, g)
	}
	ix.Add(motifB, "1")
	ix.Add(motifB, "2")
	ix.Add(motifC, "1")
	for _, g := range []string{"4", "5", "6"} {
		ix.Add(motifC, g)
	}

	buckets := BuildBuckets(ix, 2)

	require.False(t, buckets.Empty())
	assert.Equal(t, []int{4, 3, 2}, buckets.Counts())
	assert.Equal(t, []model.Motif{motifA}, buckets.Motifs(3))
	assert.Equal(t, 3, buckets.Len())

	groups := buckets.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, 4, groups[0].Count)
	assert.Equal(t, []string{string(motifC)}, groups[0].Motifs)
}

func TestBuildBuckets_ThresholdDiscardsMotifs(t *testing.T) {
	ix := NewOccurrenceIndex()
	ix.Add(motifA, "1")
	ix.Add(motifB, "1")
	ix.Add(motifB, "2")

	buckets := BuildBuckets(ix, 3)
	assert.True(t, buckets.Empty())
	assert.Empty(t, buckets.Groups())

	buckets = BuildBuckets(ix, 2)
	assert.Equal(t, []int{2}, buckets.Counts())
	for _, count := range buckets.Counts() {
		assert.GreaterOrEqual(t, count, 2)
	}
}

func TestBuildBuckets_TiesKeepDiscoveryOrder(t *testing.T) {
	ix := NewOccurrenceIndex()
	ix.Add(motifC, "1")
	ix.Add(motifA, "1")
	ix.Add(motifB, "1")

	buckets := BuildBuckets(ix, 1)
	assert.Equal(t, []model.Motif{motifC, motifA, motifB}, buckets.Motifs(1))
}

func TestBuildBuckets_DiscoveryCounts(t *testing.T) {
	ix := NewOccurrenceIndex()
	ix.Add(motifA, "1")
	ix.Add(motifB, "1")
	ix.Add(motifB, "2")
	ix.Add(motifC, "3")

	buckets := BuildBuckets(ix, 1)
	assert.Equal(t, []int{1, 2}, buckets.DiscoveryCounts())
	assert.Equal(t, []int{2, 1}, buckets.Counts())
}
