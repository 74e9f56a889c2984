// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textile

// marker is the kind of list a Textile marker character opens.
type marker byte

const (
	markerOrdered   marker = '#'
	markerUnordered marker = '*'
)

const listCloseTag = "[/list]"

// openTag returns the BBCode tag that opens a list of this kind.
func (m marker) openTag() string {
	if m == markerOrdered {
		return "[list=1]"
	}
	return "[list]"
}

// parseMarkers turns a run such as "##*" into one marker per nesting level.
func parseMarkers(run string) []marker {
	markers := make([]marker, len(run))
	for i := 0; i < len(run); i++ {
		markers[i] = marker(run[i])
	}
	return markers
}

func (b *builder) open(m marker) {
	b.emit(m.openTag())
	b.stack = append(b.stack, m)
}

func (b *builder) close() {
	b.stack = b.stack[:len(b.stack)-1]
	b.emit(listCloseTag)
}

// closeAll closes every open level, innermost first.
func (b *builder) closeAll() {
	for b.inList() {
		b.close()
	}
}

// syncLists makes the open list levels mirror target. Levels deeper than
// target are closed; from the first level whose kind differs (or is missing)
// everything above is closed and reopened with the target kinds. Levels that
// already match stay open, so an item can step back out of a nested list
// without restarting its parent.
func (b *builder) syncLists(target []marker) {
	for len(b.stack) > len(target) {
		b.close()
	}
	for i, m := range target {
		if i < len(b.stack) && b.stack[i] == m {
			continue
		}
		for len(b.stack) > i {
			b.close()
		}
		b.open(m)
	}
}
