package stp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSTP = `33D32-G
Section Comment
Name "sample"
End

Section Graph
Nodes 5
Edges 6
E 1 2 10
E 2 3 10
E 3 4 10
E 1 4 100
E 1 5 5
E 5 3 5
End

Section Terminals
Terminals 3
T 1
T 3
T 4
End

EOF
`

func TestParseWellFormed(t *testing.T) {
	g, err := Parse(strings.NewReader(sampleSTP))
	require.NoError(t, err)
	require.Equal(t, 5, g.NumVertices)
	require.Len(t, g.Edges, 6)
	require.Equal(t, []Edge{
		{U: 0, V: 1, Weight: 10},
		{U: 1, V: 2, Weight: 10},
		{U: 2, V: 3, Weight: 10},
		{U: 0, V: 3, Weight: 100},
		{U: 0, V: 4, Weight: 5},
		{U: 4, V: 2, Weight: 5},
	}, g.Edges)
	require.Equal(t, []int{0, 2, 3}, g.Terminals)
	require.False(t, g.HasCost)
}

func TestParseCostHint(t *testing.T) {
	input := sampleSTP[:strings.Index(sampleSTP, "EOF")] + "cost 15\nEOF\n"
	g, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.True(t, g.HasCost)
	require.Equal(t, int64(15), g.Cost)
}

func TestParseRejectsEdgeCountMismatch(t *testing.T) {
	bad := strings.Replace(sampleSTP, "Edges 6", "Edges 7", 1)
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParseRejectsOutOfRangeEndpoint(t *testing.T) {
	bad := strings.Replace(sampleSTP, "E 1 4 100", "E 1 9 100", 1)
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParseRejectsMissingNodes(t *testing.T) {
	_, err := Parse(strings.NewReader("Section Graph\nEdges 0\nEnd\nSection Terminals\nTerminals 0\nEnd\nEOF\n"))
	require.Error(t, err)
}

func TestParseIgnoresCoordinateLines(t *testing.T) {
	withCoords := strings.Replace(sampleSTP, "End\n\nSection Terminals",
		"End\n\nSection Coordinates\nDD 1 0 0\nDD 2 10 0\nEnd\n\nSection Terminals", 1)
	g, err := Parse(strings.NewReader(withCoords))
	require.NoError(t, err)
	require.Equal(t, 5, g.NumVertices)
}
