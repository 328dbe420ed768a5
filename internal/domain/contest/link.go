package contest

import "fmt"

// Link is the master/slave linkage of a group.
type Link struct {
	ID      int64
	Master  bool
	SlaveOf int64
}

// LinkLookup returns the link of a group; found is false when it does not exist.
type LinkLookup func(groupID int64) (link Link, found bool, err error)

// Resolve follows slave links from groupID to the group owning the roster.
// A missing target or a cycle is reported as ErrConfigInconsistent.
func Resolve(groupID int64, lookup LinkLookup) (int64, error) {
	visited := make(map[int64]bool)
	id := groupID

	for {
		if visited[id] {
			return 0, fmt.Errorf("%w: group %d is part of a slave cycle", ErrConfigInconsistent, groupID)
		}
		visited[id] = true

		link, found, err := lookup(id)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, fmt.Errorf("%w: group %d links to missing group %d", ErrConfigInconsistent, groupID, id)
		}
		if link.Master || link.SlaveOf == 0 {
			return link.ID, nil
		}
		id = link.SlaveOf
	}
}
