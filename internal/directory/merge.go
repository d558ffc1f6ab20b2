package directory

import "github.com/zarlcorp/zdir/internal/user"

// Merge combines the remote and local user collections into the reconciled
// view. Remote records keep their relative order; a local record sharing an
// id with a remote one replaces it in place, and local-only records are
// appended in the order they were added. The result holds each id exactly
// once and is recomputed from scratch on every call; Merge has no state.
func Merge(remote, local []user.User) []user.User {
	merged := make([]user.User, len(remote))
	copy(merged, remote)

	index := make(map[user.ID]int, len(remote))
	for i, u := range remote {
		if _, seen := index[u.ID]; !seen {
			index[u.ID] = i
		}
	}

	for _, lu := range local {
		if i, ok := index[lu.ID]; ok {
			merged[i] = lu
			continue
		}
		index[lu.ID] = len(merged)
		merged = append(merged, lu)
	}

	return merged
}
