package spec

import "sort"

// Group holds every record sharing a name, newest version first.
type Group struct {
	Name    string
	Records []*Record
}

// Latest returns the newest record in the group.
func (g *Group) Latest() *Record {
	if len(g.Records) == 0 {
		return nil
	}
	return g.Records[0]
}

// LatestStable returns the newest stable record, or nil when every
// version is a prerelease.
func (g *Group) LatestStable() *Record {
	for _, r := range g.Records {
		if IsStable(r.Version) {
			return r
		}
	}
	return nil
}

// GroupRecords groups records by name, sorts each group's versions
// descending, and returns the groups in navigation order.
func GroupRecords(records []*Record) []*Group {
	byName := make(map[string]*Group)
	var groups []*Group
	for _, r := range records {
		g, ok := byName[r.Name]
		if !ok {
			g = &Group{Name: r.Name}
			byName[r.Name] = g
			groups = append(groups, g)
		}
		g.Records = append(g.Records, r)
	}

	for _, g := range groups {
		sort.SliceStable(g.Records, func(i, j int) bool {
			vi := ParseVersion(g.Records[i].Version)
			vj := ParseVersion(g.Records[j].Version)
			return vi.Compare(vj) > 0
		})
	}

	SortGroups(groups)
	return groups
}

// SortGroups orders groups for index and navigation: explicit page order
// ascending first, then the rest alphabetically by name.
func SortGroups(groups []*Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		oi := groupPageOrder(groups[i])
		oj := groupPageOrder(groups[j])
		switch {
		case oi != nil && oj != nil:
			if *oi != *oj {
				return *oi < *oj
			}
			return groups[i].Name < groups[j].Name
		case oi != nil:
			return true
		case oj != nil:
			return false
		}
		return groups[i].Name < groups[j].Name
	})
}

func groupPageOrder(g *Group) *int {
	latest := g.Latest()
	if latest == nil {
		return nil
	}
	return latest.PageOrder
}
