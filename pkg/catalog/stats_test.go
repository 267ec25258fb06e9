package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCountsAndUsage(t *testing.T) {
	s := newTestStore(t)

	ui, err := s.CreateTag("UI", "", "")
	require.NoError(t, err)
	unused, err := s.CreateTag("unused", "", "")
	require.NoError(t, err)
	auth, err := s.CreateCategory("Auth", "")
	require.NoError(t, err)
	claude, err := s.CreateModel("claude", "", "")
	require.NoError(t, err)

	_, err = s.CreateFile(FileMeta{Title: "a", Tags: []TagID{ui.ID}, Category: auth.ID, Model: claude.ID}, "b1")
	require.NoError(t, err)
	_, err = s.CreateFile(FileMeta{Title: "b", Tags: []TagID{ui.ID}}, "b2")
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 2, stats.TotalFiles)
	assert.Equal(t, 2, stats.TotalTags)
	assert.Equal(t, 1, stats.TotalModels)
	assert.Equal(t, 1, stats.TotalCategories)

	assert.Equal(t, 2, stats.TagUsage[ui.ID])
	assert.Equal(t, 1, stats.ModelUsage[claude.ID])
	assert.Equal(t, 1, stats.CategoryUsage[auth.ID])

	// Unused presets still appear with an explicit zero.
	count, ok := stats.TagUsage[unused.ID]
	assert.True(t, ok)
	assert.Equal(t, 0, count)
}

func TestStatsFollowMutations(t *testing.T) {
	s := newTestStore(t)

	ui, err := s.CreateTag("UI", "", "")
	require.NoError(t, err)
	file, err := s.CreateFile(FileMeta{Title: "a", Tags: []TagID{ui.ID}}, "b1")
	require.NoError(t, err)
	require.Equal(t, 1, s.Stats().TagUsage[ui.ID])

	// Updating the file away from the tag drops usage to zero.
	_, err = s.UpdateFile(file.ID, FilePatch{Tags: []TagID{}})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Stats().TagUsage[ui.ID])

	// Re-attach, then soft-delete the file: usage drops again but the file
	// record itself survives in the snapshot.
	_, err = s.UpdateFile(file.ID, FilePatch{Tags: []TagID{ui.ID}})
	require.NoError(t, err)
	require.Equal(t, 1, s.Stats().TagUsage[ui.ID])

	require.NoError(t, s.DeleteFile(file.ID))
	stats := s.Stats()
	assert.Equal(t, 0, stats.TotalFiles)
	assert.Equal(t, 0, stats.TagUsage[ui.ID])

	// Deleting the now-unused tag removes it from the usage map entirely.
	require.NoError(t, s.DeleteTag(ui.ID))
	stats = s.Stats()
	assert.Equal(t, 0, stats.TotalTags)
	_, ok := stats.TagUsage[ui.ID]
	assert.False(t, ok)
}

func TestStatsCopyIsDetached(t *testing.T) {
	s := newTestStore(t)

	ui, err := s.CreateTag("UI", "", "")
	require.NoError(t, err)

	stats := s.Stats()
	stats.TagUsage[ui.ID] = 99

	assert.Equal(t, 0, s.Stats().TagUsage[ui.ID])
}
