package icon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PointStore_Go/internal/domain"
)

func TestMerge(t *testing.T) {
	catalog := []domain.Icon{
		{ID: 1, Name: "Leaf", Rarity: domain.RarityCommon},
		{ID: 2, Name: "Comet", Rarity: domain.RarityEpic},
		{ID: 3, Name: "Crown", Rarity: domain.RarityLegendary},
		{ID: 4, Name: "Moon", Rarity: domain.RarityRare},
	}
	owned := []domain.OwnedIcon{
		{Icon: catalog[0], Equipped: false},
		{Icon: catalog[1], Equipped: true},
	}

	views := Merge(catalog, owned)
	require.Len(t, views, 4)

	for i, v := range views {
		assert.Equal(t, catalog[i].ID, v.ID, "catalog order kept")
	}
	assert.True(t, views[0].Owned)
	assert.False(t, views[0].Equipped)
	assert.True(t, views[1].Owned)
	assert.True(t, views[1].Equipped)
	assert.False(t, views[2].Owned)
	assert.False(t, views[3].Owned)

	equipped := 0
	for _, v := range views {
		if v.Equipped {
			equipped++
			assert.True(t, v.Owned)
		}
	}
	assert.Equal(t, 1, equipped)
}

func TestMerge_OwnedMissingFromCatalogIsKept(t *testing.T) {
	owned := []domain.OwnedIcon{{Icon: domain.Icon{ID: 9, Name: "Retired", Rarity: domain.RarityEvent}}}
	views := Merge(nil, owned)
	require.Len(t, views, 1)
	assert.True(t, views[0].Owned)
	assert.Equal(t, "Retired", views[0].Name)
}

func TestMerge_OrphansFollowCatalog(t *testing.T) {
	catalog := []domain.Icon{{ID: 5, Rarity: domain.RarityCommon}, {ID: 2, Rarity: domain.RarityLegendary}}
	owned := []domain.OwnedIcon{{Icon: domain.Icon{ID: 9, Rarity: domain.RarityEvent}}, {Icon: catalog[1]}}

	views := Merge(catalog, owned)
	require.Len(t, views, 3)
	assert.Equal(t, []int64{5, 2, 9}, []int64{views[0].ID, views[1].ID, views[2].ID})
}

func TestMerge_DuplicatesCollapsed(t *testing.T) {
	catalog := []domain.Icon{{ID: 1}, {ID: 1}}
	assert.Len(t, Merge(catalog, nil), 1)
}

func TestMerge_IsPure(t *testing.T) {
	catalog := []domain.Icon{{ID: 2, Rarity: domain.RarityCommon}, {ID: 1, Rarity: domain.RarityEpic}}
	_ = Merge(catalog, nil)
	assert.Equal(t, int64(2), catalog[0].ID, "input order untouched")
	assert.Equal(t, Merge(catalog, nil), Merge(catalog, nil))
}

func TestSummarize(t *testing.T) {
	views := []domain.IconView{
		{Icon: domain.Icon{ID: 1, Rarity: domain.RarityEpic}, Owned: true},
		{Icon: domain.Icon{ID: 2, Rarity: domain.RarityEpic}, Owned: true},
		{Icon: domain.Icon{ID: 3, Rarity: domain.RarityRare}},
	}
	s := Summarize(views)
	assert.Equal(t, 2, s.Owned)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.ByRarity[domain.RarityEpic])
	assert.Zero(t, s.ByRarity[domain.RarityRare])
}

func TestStats_RaritiesRarestFirst(t *testing.T) {
	s := Summarize([]domain.IconView{
		{Icon: domain.Icon{ID: 1, Rarity: domain.RarityCommon}, Owned: true},
		{Icon: domain.Icon{ID: 2, Rarity: domain.RarityLegendary}, Owned: true},
		{Icon: domain.Icon{ID: 3, Rarity: domain.RarityEpic}, Owned: true},
		{Icon: domain.Icon{ID: 4, Rarity: domain.RarityRare}},
	})
	assert.Equal(t, []domain.Rarity{domain.RarityLegendary, domain.RarityEpic, domain.RarityCommon}, s.Rarities())
}
