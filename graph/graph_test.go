package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/units"
)

func triangle() (*graph.Graph, error) {
	vs := []graph.Vertex{{Id: 0}, {Id: 1}, {Id: 2}}
	es := []graph.Edge{
		{Src: 0, Dst: 1, Distance: units.Distance(10)},
		{Src: 1, Dst: 2, Distance: units.Distance(5)},
	}

	return graph.Build(vs, es)
}

type GraphSuite struct {
	suite.Suite
	g *graph.Graph
}

func (s *GraphSuite) SetupTest() {
	g, err := triangle()
	s.Require().NoError(err, "Build should succeed for a well-formed triangle")
	s.g = g
}

func (s *GraphSuite) TestBuild_ValidGraph() {
	require := require.New(s.T())
	require.Equal(3, s.g.NumVertices(), "expected 3 vertices")
	require.Equal(2, s.g.NumEdges(), "expected 2 edges")
}

func (s *GraphSuite) TestBuild_DanglingEdge() {
	require := require.New(s.T())

	vs := []graph.Vertex{{Id: 0}}
	es := []graph.Edge{{Src: 0, Dst: 5}}

	_, err := graph.Build(vs, es)
	require.ErrorIs(err, graph.ErrDanglingEdge, "an edge into a missing vertex should fail ErrDanglingEdge")
}

func (s *GraphSuite) TestOutEdges_OrderAndNotFound() {
	require := require.New(s.T())

	out, err := s.g.OutEdges(0)
	require.NoError(err, "OutEdges(0)")
	require.Equal([]graph.EdgeId{0}, out, "vertex 0's only out-edge is edge 0")

	_, err = s.g.OutEdges(99)
	require.ErrorIs(err, graph.ErrVertexNotFound, "OutEdges of a nonexistent vertex")
}

func (s *GraphSuite) TestVertexAndEdgeAccessors() {
	require := require.New(s.T())

	_, err := s.g.Vertex(2)
	require.NoError(err, "Vertex(2)")

	_, err = s.g.Edge(1)
	require.NoError(err, "Edge(1)")

	_, err = s.g.Edge(99)
	require.ErrorIs(err, graph.ErrEdgeNotFound, "Edge(99) should not exist")
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}
