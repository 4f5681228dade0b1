package manifest

import (
	"strconv"

	"git.home.luguber.info/inful/lessonindex/internal/naming"
)

// Fallback slugs for names that slugify to nothing (e.g. purely Arabic names).
const (
	fallbackSectionID = "section"
	fallbackItemID    = "item"
)

// idResolution reports how one derived ID was rewritten.
type idResolution struct {
	index     int
	original  string
	resolved  string
	empty     bool // original slug was empty
	reserved  bool // original slug collided with a reserved ID
	duplicate bool // an earlier entry derived the same non-empty slug
}

// resolveIDs makes ids unique in place. Every non-empty slug is claimed
// first: its first holder keeps it, so a rewrite never takes a slug another
// entry derived. Later holders of a slug, empty slugs (given fallback) and
// reserved slugs then get the first free value among base, base-2, base-3,
// ..., trimmed to naming.MaxIDLength. Reserved IDs are never handed out.
func resolveIDs(ids []string, reserved map[string]bool, fallback string) []idResolution {
	taken := make(map[string]bool, len(ids))
	var pending []idResolution

	for i, id := range ids {
		switch {
		case id == "":
			pending = append(pending, idResolution{index: i, original: id, empty: true})
		case reserved[id]:
			pending = append(pending, idResolution{index: i, original: id, reserved: true})
		case taken[id]:
			pending = append(pending, idResolution{index: i, original: id, duplicate: true})
		default:
			taken[id] = true
		}
	}

	for j := range pending {
		res := &pending[j]
		base := res.original
		if res.empty {
			base = fallback
		}
		candidate := base
		for n := 2; taken[candidate] || reserved[candidate]; n++ {
			candidate = withSuffix(base, n)
		}
		taken[candidate] = true
		ids[res.index] = candidate
		res.resolved = candidate
	}
	return pending
}

func withSuffix(base string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	if len(base)+len(suffix) > naming.MaxIDLength {
		base = base[:naming.MaxIDLength-len(suffix)]
	}
	return base + suffix
}
