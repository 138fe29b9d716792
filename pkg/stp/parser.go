package stp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a DIMACS STP file from r, following the section grammar of
// graph_load in the original implementation: "section <name>" / "end"
// blocks containing "nodes", "edges", "terminals", "e u v w", "t u",
// "cost w", "dd ..." (coordinates, ignored) and a terminating "eof" line.
// Unrecognised lines are skipped rather than rejected, matching the
// original's permissive default case.
func Parse(r io.Reader) (*Graph, error) {
	g := &Graph{}
	var wantEdges, wantTerminals int
	haveNodes, haveEdges, haveTerminals := false, false, false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	section := ""
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "section":
			if len(fields) < 2 {
				return nil, &ParseError{Line: lineNo, Msg: "invalid section line"}
			}
			if section != "" {
				return nil, &ParseError{Line: lineNo, Section: section, Msg: "nested section"}
			}
			section = strings.ToLower(fields[1])
			switch section {
			case "comment", "graph", "terminals", "coordinates":
			default:
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid section %q", section)}
			}

		case "end":
			section = ""

		case "nodes":
			n, err := parseInt(fields, 1, lineNo, section)
			if err != nil {
				return nil, err
			}
			g.NumVertices = n
			haveNodes = true

		case "edges":
			m, err := parseInt(fields, 1, lineNo, section)
			if err != nil {
				return nil, err
			}
			wantEdges = m
			g.Edges = make([]Edge, 0, m)
			haveEdges = true

		case "terminals":
			k, err := parseInt(fields, 1, lineNo, section)
			if err != nil {
				return nil, err
			}
			wantTerminals = k
			g.Terminals = make([]int, 0, k)
			haveTerminals = true

		case "e":
			if len(fields) != 4 {
				return nil, &ParseError{Line: lineNo, Section: section, Msg: "invalid edge line"}
			}
			u, err1 := strconv.Atoi(fields[1])
			v, err2 := strconv.Atoi(fields[2])
			w, err3 := strconv.ParseInt(fields[3], 10, 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, &ParseError{Line: lineNo, Section: section, Msg: "invalid edge fields"}
			}
			if w < 0 {
				return nil, &ParseError{Line: lineNo, Section: section, Msg: "negative edge weight"}
			}
			g.Edges = append(g.Edges, Edge{U: u - 1, V: v - 1, Weight: w})

		case "t":
			if len(fields) != 2 {
				return nil, &ParseError{Line: lineNo, Section: section, Msg: "invalid terminal line"}
			}
			u, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, &ParseError{Line: lineNo, Section: section, Msg: "invalid terminal id"}
			}
			g.Terminals = append(g.Terminals, u-1)

		case "dd":
			continue // coordinates ignored, matching the original's ignored "dd" case.

		case "cost":
			c, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Section: section, Msg: "invalid cost line"}
			}
			g.Cost = c
			g.HasCost = true

		case "eof":
			continue

		default:
			continue // unrecognised lines are skipped, not rejected.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stp: reading input: %w", err)
	}

	if !haveNodes || g.NumVertices == 0 {
		return nil, &ParseError{Line: lineNo, Msg: "missing or empty nodes section"}
	}
	if !haveEdges || len(g.Edges) != wantEdges {
		return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("edges count mismatch: declared %d, read %d", wantEdges, len(g.Edges))}
	}
	if !haveTerminals || len(g.Terminals) != wantTerminals {
		return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("terminals count mismatch: declared %d, read %d", wantTerminals, len(g.Terminals))}
	}
	for _, e := range g.Edges {
		if e.U < 0 || e.U >= g.NumVertices || e.V < 0 || e.V >= g.NumVertices {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("edge endpoint out of range: %d %d", e.U+1, e.V+1)}
		}
	}
	for _, t := range g.Terminals {
		if t < 0 || t >= g.NumVertices {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("terminal out of range: %d", t+1)}
		}
	}

	return g, nil
}

func parseInt(fields []string, idx, lineNo int, section string) (int, error) {
	if idx >= len(fields) {
		return 0, &ParseError{Line: lineNo, Section: section, Msg: "missing field"}
	}
	v, err := strconv.Atoi(fields[idx])
	if err != nil {
		return 0, &ParseError{Line: lineNo, Section: section, Msg: fmt.Sprintf("invalid integer %q", fields[idx])}
	}
	return v, nil
}
