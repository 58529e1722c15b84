package bmesh

import "errors"

var (
	// ErrStaleHandle is returned when a handle does not name a live entity.
	ErrStaleHandle = errors.New("bmesh: stale or unknown handle")

	// ErrSelfLoop is returned when both endpoints of a new edge are the
	// same vertex.
	ErrSelfLoop = errors.New("bmesh: edge endpoints must be distinct")

	// ErrFaceTooSmall is returned for faces with fewer than three sides.
	ErrFaceTooSmall = errors.New("bmesh: face needs at least 3 vertices")

	// ErrLengthMismatch is returned when the vertex and edge lists of a
	// face differ in length.
	ErrLengthMismatch = errors.New("bmesh: vertex and edge counts differ")

	// ErrOpenBoundary is returned when edges[i] does not join verts[i]
	// and verts[i+1].
	ErrOpenBoundary = errors.New("bmesh: edge does not join consecutive vertices")

	// ErrRepeatedVertex is returned when a vertex appears twice on one
	// face boundary.
	ErrRepeatedVertex = errors.New("bmesh: vertex repeated on face boundary")
)
