// Package graphfile reads and writes graphs in a line based text format:
//
//	v <id> <x> <y>
//	e <id1> <id2>
//
// A v record declares a node by integer id and float coordinates. An e record
// connects two previously declared nodes. Blank lines and lines starting with
// # are ignored.
package graphfile

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/graphsearch/models"
)

const (
	ErrTypeRead          = "graphfile_read_error"
	ErrTypeWrite         = "graphfile_write_error"
	ErrTypeSyntax        = "graphfile_syntax_error"
	ErrTypeUnknownNode   = "graphfile_unknown_node"
	ErrTypeDuplicateNode = "graphfile_duplicate_node"
	ErrTypeOutOfBounds   = "graphfile_out_of_bounds"
)

// Result describes what Load added to a graph.
type Result struct {
	// The created nodes by file id.
	Nodes map[int]models.NodeID

	Edges int

	// Edge records refused by the graph, such as self loops or edges
	// declared twice.
	Skipped int
}

// Load replays the records read from r into g. It stops at the first
// malformed record and returns an error tagged with its line number. Records
// before it stay applied.
func Load(r io.Reader, g *models.Graph) (Result, error) {
	res := Result{
		Nodes: make(map[int]models.NodeID),
	}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = loadNode(g, &res, fields)
		case "e":
			err = loadEdge(g, &res, fields)
		default:
			err = errors.New("unknown record").
				WithType(ErrTypeSyntax).
				WithTag("record", fields[0])
		}
		if err != nil {
			return res, errors.New("loading graph failed").
				WithType(errors.Type(err)).
				WithTag("line", line).
				Wrap(err)
		}
	}

	if err := scanner.Err(); err != nil {
		return res, errors.New("reading graph failed").
			WithType(ErrTypeRead).
			WithTag("line", line).
			Wrap(err)
	}

	logs.WithTag("graph", g.Name).
		WithTag("nodes", len(res.Nodes)).
		WithTag("edges", res.Edges).
		WithTag("skipped", res.Skipped).
		Debug("graph loaded")
	return res, nil
}

func loadNode(g *models.Graph, res *Result, fields []string) error {
	if len(fields) != 4 {
		return errors.Newf("node record has %d fields instead of 4", len(fields)).
			WithType(ErrTypeSyntax)
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return errors.New("invalid node id").
			WithType(ErrTypeSyntax).
			Wrap(err)
	}
	x, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return errors.New("invalid x coordinate").
			WithType(ErrTypeSyntax).
			WithTag("id", id).
			Wrap(err)
	}
	y, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return errors.New("invalid y coordinate").
			WithType(ErrTypeSyntax).
			WithTag("id", id).
			Wrap(err)
	}

	if _, ok := res.Nodes[id]; ok {
		return errors.New("node declared twice").
			WithType(ErrTypeDuplicateNode).
			WithTag("id", id)
	}
	if !g.Contains(x, y) {
		return errors.New("node is outside the universe").
			WithType(ErrTypeOutOfBounds).
			WithTag("id", id).
			WithTag("x", x).
			WithTag("y", y)
	}

	res.Nodes[id] = g.CreateNode(x, y)
	return nil
}

func loadEdge(g *models.Graph, res *Result, fields []string) error {
	if len(fields) != 3 {
		return errors.Newf("edge record has %d fields instead of 3", len(fields)).
			WithType(ErrTypeSyntax)
	}

	var nodes [2]models.NodeID
	for i, f := range fields[1:] {
		id, err := strconv.Atoi(f)
		if err != nil {
			return errors.New("invalid node id").
				WithType(ErrTypeSyntax).
				Wrap(err)
		}

		n, ok := res.Nodes[id]
		if !ok {
			return errors.New("edge references an undeclared node").
				WithType(ErrTypeUnknownNode).
				WithTag("id", id)
		}
		nodes[i] = n
	}

	if _, ok := g.CreateEdge(nodes[0], nodes[1]); !ok {
		logs.WithTag("graph", g.Name).
			WithTag("id1", fields[1]).
			WithTag("id2", fields[2]).
			Debug("edge record skipped")
		res.Skipped++
		return nil
	}

	res.Edges++
	return nil
}

// Save writes the nodes of g in creation order with ids starting at 1,
// followed by its structural edges. Visibility edges and faces are not
// written.
func Save(w io.Writer, g *models.Graph) error {
	bw := bufio.NewWriter(w)
	ids := make(map[models.NodeID]int, g.NodeCount())

	for i, id := range g.Nodes() {
		p, _ := g.Position(id)
		ids[id] = i + 1

		fmt.Fprintf(bw, "v %d %s %s\n",
			i+1,
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		)
	}

	for _, e := range structuralEdges(g) {
		fmt.Fprintf(bw, "e %d %d\n", ids[e.N1], ids[e.N2])
	}

	if err := bw.Flush(); err != nil {
		return errors.New("writing graph failed").
			WithType(ErrTypeWrite).
			Wrap(err)
	}
	return nil
}

// structuralEdges returns the non visibility edges ordered by endpoints
// creation order.
func structuralEdges(g *models.Graph) []models.Edge {
	var edges []models.Edge
	for _, id := range g.Edges() {
		if e, _ := g.Edge(id); !e.Visibility {
			edges = append(edges, e)
		}
	}

	seq := func(id models.NodeID) uint64 {
		n, _ := g.Node(id)
		return n.Seq
	}
	slices.SortFunc(edges, func(a, b models.Edge) int {
		if c := cmp.Compare(seq(a.N1), seq(b.N1)); c != 0 {
			return c
		}
		return cmp.Compare(seq(a.N2), seq(b.N2))
	})
	return edges
}
