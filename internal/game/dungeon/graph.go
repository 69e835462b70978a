package dungeon

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// adjacency returns the undirected neighbor lists of the floor, each sorted
// ascending so traversals are deterministic.
func (f *Floor) adjacency() map[RoomID][]RoomID {
	seen := make(map[[2]RoomID]bool)
	adj := make(map[RoomID][]RoomID, len(f.Rooms))
	for _, id := range f.RoomIDs() {
		for _, n := range f.Rooms[id].Neighbors() {
			a, b := id, n
			if a > b {
				a, b = b, a
			}
			if seen[[2]RoomID{a, b}] {
				continue
			}
			seen[[2]RoomID{a, b}] = true
			adj[a] = append(adj[a], b)
			adj[b] = append(adj[b], a)
		}
	}
	for id := range adj {
		ids := adj[id]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return adj
}

// Distances returns the BFS hop count from start to every reachable room,
// treating exits as undirected edges.
//
// Postcondition: The result contains start with distance 0, or is empty if
// start is not on the floor.
func (f *Floor) Distances(start RoomID) map[RoomID]int {
	dist := make(map[RoomID]int)
	if _, ok := f.Rooms[start]; !ok {
		return dist
	}
	adj := f.adjacency()
	visited := mapset.New[RoomID]()
	visited.Put(start)
	dist[start] = 0
	queue := []RoomID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range adj[cur] {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// ReachableFrom returns the set of rooms connected to start.
func (f *Floor) ReachableFrom(start RoomID) mapset.Set[RoomID] {
	out := mapset.New[RoomID]()
	for id := range f.Distances(start) {
		out.Put(id)
	}
	return out
}

// Point is a room's grid position relative to the entrance.
type Point struct{ X, Y int }

// Coordinates recovers grid positions by walking exits outward from the
// entrance. Generated floors are grid-consistent, so every room receives
// exactly one position.
//
// Postcondition: The entrance, when present, is at {0, 0}.
func (f *Floor) Coordinates() map[RoomID]Point {
	pos := make(map[RoomID]Point, len(f.Rooms))
	if _, ok := f.Rooms[f.Entrance]; !ok {
		return pos
	}
	pos[f.Entrance] = Point{}
	queue := []RoomID{f.Entrance}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		room := f.Rooms[cur]
		for _, dir := range room.ExitDirections() {
			target := room.Exits[dir].Target
			if _, seen := pos[target]; seen {
				continue
			}
			if _, ok := f.Rooms[target]; !ok {
				continue
			}
			dx, dy := dir.delta()
			pos[target] = Point{pos[cur].X + dx, pos[cur].Y + dy}
			queue = append(queue, target)
		}
	}
	return pos
}
