// Package bmesh implements a boundary-representation mesh for planar
// polygonal meshes. Vertices, edges, loops and faces live in
// generation-checked stores and refer to one another by handle.
//
// Three circular structures tie the entities together:
//
//   - the disk cycle: the edges around a vertex, linked through the two
//     DiskLink records every edge carries (one per endpoint);
//   - the radial cycle: the loops around an edge, one per face using it;
//   - the face loop cycle: the boundary of a face, in construction order.
//
// Every exported operator leaves all three cycles closed and consistent
// before it returns. Killing an edge or vertex also kills the faces that
// depend on it; killing a face never touches its edges or vertices.
//
// A Mesh is not safe for concurrent use. Callers that share one across
// goroutines must serialize every mutating call.
package bmesh
