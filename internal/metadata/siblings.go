package metadata

import (
	"cmp"
	"slices"
)

// SiblingInput is the per-ROM data sibling grouping needs.
type SiblingInput struct {
	ROMID          int64
	Platform       string
	IDs            ExternalIDs
	NormalizedName string
}

// SiblingGroup is a set of ROMs on one platform that are variants of the
// same game.
type SiblingGroup struct {
	Platform string
	ROMIDs   []int64
}

// GroupSiblings returns the connected components of ROMs that share, within
// a platform, any sibling-defining external id or a normalized file name.
// Only groups with at least two ROMs are returned, sorted by their lowest ROM
// id; ids inside a group are ascending.
func GroupSiblings(roms []SiblingInput) []SiblingGroup {
	uf := newUnionFind(len(roms))
	owners := make(map[string]int)
	for i, rom := range roms {
		keys := rom.IDs.SiblingKeys()
		if rom.NormalizedName != "" {
			keys = append(keys, "name:"+rom.NormalizedName)
		}
		for _, key := range keys {
			bucket := rom.Platform + "\x00" + key
			if owner, ok := owners[bucket]; ok {
				uf.union(owner, i)
				continue
			}
			owners[bucket] = i
		}
	}

	members := make(map[int][]int64)
	for i, rom := range roms {
		root := uf.find(i)
		members[root] = append(members[root], rom.ROMID)
	}

	groups := make([]SiblingGroup, 0)
	for root, ids := range members {
		if len(ids) < 2 {
			continue
		}
		slices.Sort(ids)
		groups = append(groups, SiblingGroup{Platform: roms[root].Platform, ROMIDs: ids})
	}
	slices.SortFunc(groups, func(a, b SiblingGroup) int {
		if c := cmp.Compare(a.Platform, b.Platform); c != 0 {
			return c
		}
		return cmp.Compare(a.ROMIDs[0], b.ROMIDs[0])
	})
	return groups
}

// SiblingsOf returns the other members of romID's group, or nil.
func SiblingsOf(groups []SiblingGroup, romID int64) []int64 {
	for _, group := range groups {
		if !slices.Contains(group.ROMIDs, romID) {
			continue
		}
		out := make([]int64, 0, len(group.ROMIDs)-1)
		for _, id := range group.ROMIDs {
			if id != romID {
				out = append(out, id)
			}
		}
		return out
	}
	return nil
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}
