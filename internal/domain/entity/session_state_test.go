package entity_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterIDs() entity.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("restored-%d", n)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tl := newTestList("a", "b", "c")
	tl.Switch("b")

	state := entity.SnapshotFromTabList(7, tl)
	require.Len(t, state.Tabs, 3)
	assert.Equal(t, entity.SessionStateVersion, state.Version)
	assert.Equal(t, 1, state.ActiveTabIndex)

	data, err := entity.MarshalSessionState(state)
	require.NoError(t, err)
	decoded, err := entity.UnmarshalSessionState(data)
	require.NoError(t, err)

	restored := entity.TabListFromSnapshot(decoded, counterIDs())
	require.Equal(t, 3, restored.Count())
	assert.Equal(t, entity.TabID("restored-2"), restored.ActiveTabID)
	assert.Equal(t, "https://b.example", restored.ActiveTab().URL)
}

func TestUnmarshalSessionState_RejectsNewerVersion(t *testing.T) {
	_, err := entity.UnmarshalSessionState([]byte(`{"version": 99, "tabs": []}`))
	assert.Error(t, err)
}

func TestTabListFromSnapshot_Nil(t *testing.T) {
	tl := entity.TabListFromSnapshot(nil, counterIDs())
	assert.Equal(t, 0, tl.Count())
}

func TestClosedTabsRoundTrip(t *testing.T) {
	ring := entity.NewClosedTabRing(5)
	ring.Push(entity.ClosedTab{URL: "https://old", ClosedAt: time.Unix(1, 0).UTC()})
	ring.Push(entity.ClosedTab{URL: "https://new", ClosedAt: time.Unix(2, 0).UTC()})

	data, err := entity.MarshalClosedTabs(ring)
	require.NoError(t, err)

	entries, err := entity.UnmarshalClosedTabs(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "https://new", entries[0].URL)

	restored := entity.NewClosedTabRing(5)
	restored.Reset(entries)
	assert.Equal(t, ring.List(), restored.List())
}
