package worldgen

import (
	"strconv"

	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/rng"
)

// cardinal growth directions for footprint expansion: north, south, east,
// west, in this fixed order (order only affects which candidate a given
// keyed draw lands on, not the result's validity).
var cardinalDirs = [4][2]int{{0, -1}, {0, 1}, {1, 0}, {-1, 0}}

// PlanSites runs L1 site planning for a macro cell, caching the result on
// the MacroCell so repeat calls return the same plan by value rather than
// re-rolling placement. site_id is taken to equal cluster_id: the spec
// names no separate identifier scheme for sites, and cluster_id is already
// unique per macro cell and placement order.
func PlanSites(mc *MacroCell, worldSeed int32, cat *catalogs.Catalogs) SitePlan {
	if mc.sitePlanCached {
		return *mc.SitePlan
	}

	w, h := mc.L1.W, mc.L1.H
	occupied := make([][]bool, w)
	for i := range occupied {
		occupied[i] = make([]bool, h)
	}

	target := rng.RandInt(worldSeed, []string{"target", strconv.Itoa(mc.MX), strconv.Itoa(mc.MY)}, 7, 11)

	var sites []Site
	placed := 0
	epoch := 0

	place := func(tierName string, tierRank int) bool {
		tier := cat.SettlementTier(tierName)
		for attempt := 0; attempt < 80; attempt++ {
			epoch++
			base := "cand|" + mc.ID + "|" + tierName + "|" + strconv.Itoa(epoch)
			lx := rng.RandInt(worldSeed, []string{base, "lx"}, 0, w-1)
			ly := rng.RandInt(worldSeed, []string{base, "ly"}, 0, h-1)
			if occupied[lx][ly] {
				continue
			}
			if !spacingOK(sites, lx, ly, tier.MinSpacing, cat) {
				continue
			}
			cells := growFootprint(occupied, lx, ly, tier.Footprint, worldSeed, mc, tierName, epoch)
			n := len(sites)
			clusterID := mc.clusterID(n)
			sites = append(sites, Site{
				ID:        clusterID,
				MX:        mc.MX,
				MY:        mc.MY,
				ClusterID: clusterID,
				SegIndex:  0,
				Tier:      tierRank,
				TierName:  tierName,
				Cells:     cells,
				Promoted:  false,
			})
			placed++
			return true
		}
		return false
	}

	if mc.Caps.MetropolisMax > 0 {
		place("metropolis", 6)
	}
	if mc.Caps.CityMax > 0 {
		place("city", 5)
	}
	for attempt := 0; attempt < 200 && placed < target; attempt++ {
		place("town", 4)
	}
	alternate := []struct {
		name string
		rank int
	}{{"hamlet", 2}, {"outpost", 1}}
	maxAlt := 2 * w * h
	for attempt := 0; attempt < maxAlt; attempt++ {
		pick := alternate[attempt%2]
		place(pick.name, pick.rank)
	}

	plan := SitePlan{Sites: sites, WarnShortfall: placed < target}
	mc.SitePlan = &plan
	mc.sitePlanCached = true
	return plan
}

// clusterID formats a cluster id "{mx}x{my}_{n}" for the nth site placed
// (in placement order) within this macro cell.
func (mc *MacroCell) clusterID(n int) string {
	return strconv.Itoa(mc.MX) + "x" + strconv.Itoa(mc.MY) + "_" + strconv.Itoa(n)
}

// spacingOK enforces spacing against every already-placed site using the
// larger of the two tiers' MinSpacing, per pair — a low-spacing outpost
// placed next to an already-placed city still has to clear the city's
// wider spacing requirement, not just its own.
func spacingOK(existing []Site, lx, ly, minSpacing int, cat *catalogs.Catalogs) bool {
	for _, s := range existing {
		c := s.CenterCell()
		required := minSpacing
		if other := cat.SettlementTier(s.TierName).MinSpacing; other > required {
			required = other
		}
		if chebyshev(lx-c.LX, ly-c.LY) < required {
			return false
		}
	}
	return true
}

// growFootprint places `size` contiguous cells starting at (startX,startY)
// by repeatedly extending a random frontier cell in a random cardinal
// direction, bounded at 200 attempts regardless of how many cells that
// actually yields.
func growFootprint(occupied [][]bool, startX, startY, size int, seed int32, mc *MacroCell, tierName string, epoch int) []SiteCell {
	w, h := len(occupied), len(occupied[0])
	occupied[startX][startY] = true
	cells := []SiteCell{{LX: startX, LY: startY}}
	if size <= 1 {
		return cells
	}
	frontier := []SiteCell{{LX: startX, LY: startY}}

	for attempt := 0; len(cells) < size && attempt < 200; attempt++ {
		base := "grow|" + mc.ID + "|" + tierName + "|" + strconv.Itoa(epoch) + "|" + strconv.Itoa(attempt)
		fi := rng.RandInt(seed, []string{base, "frontier"}, 0, len(frontier)-1)
		origin := frontier[fi]
		di := rng.RandInt(seed, []string{base, "dir"}, 0, 3)
		dir := cardinalDirs[di]
		nx, ny := origin.LX+dir[0], origin.LY+dir[1]
		if nx < 0 || nx >= w || ny < 0 || ny >= h || occupied[nx][ny] {
			continue
		}
		occupied[nx][ny] = true
		cell := SiteCell{LX: nx, LY: ny}
		cells = append(cells, cell)
		frontier = append(frontier, cell)
	}
	return cells
}
