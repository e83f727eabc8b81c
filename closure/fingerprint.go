// SPDX-License-Identifier: MIT

package closure

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/cfpq/core"
	"github.com/katalvlaran/cfpq/grammar"
)

// fingerprintSpace namespaces query fingerprints.
var fingerprintSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/katalvlaran/cfpq/closure"))

// Fingerprint returns a deterministic name-based UUID of the (grammar, graph)
// pair. Production order, edge IDs and parallel duplicates do not matter;
// vertices, labeled edges and the start symbol do. Two queries with equal
// fingerprints have equal results. Of opts only WithSources changes the
// fingerprint; invalid options are ignored here and rejected by Compute.
//
// Every name is written length-prefixed, so names containing separators
// cannot make two different queries encode alike.
func Fingerprint(g *grammar.WeakCNF, graph *core.Graph, opts ...Option) uuid.UUID {
	var sb strings.Builder

	sb.WriteString("start ")
	if g != nil {
		sb.WriteString(field(string(g.Start)))
		prods := make([]string, 0, len(g.Productions))
		for _, p := range g.Productions {
			prods = append(prods, encodeProduction(p))
		}
		sort.Strings(prods)
		for _, p := range dedup(prods) {
			sb.WriteString("\np ")
			sb.WriteString(p)
		}
	}

	if graph != nil {
		for _, v := range graph.Vertices() {
			sb.WriteString("\nv ")
			sb.WriteString(field(v))
		}
		edges := make([]string, 0, graph.EdgeCount())
		for _, e := range graph.Edges() {
			edges = append(edges, field(e.From)+field(e.Label)+field(e.To))
		}
		sort.Strings(edges)
		for _, e := range dedup(edges) {
			sb.WriteString("\ne ")
			sb.WriteString(e)
		}
	}

	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.Sources) > 0 {
		srcs := append([]string(nil), o.Sources...)
		sort.Strings(srcs)
		for _, s := range dedup(srcs) {
			sb.WriteString("\ns ")
			sb.WriteString(field(s))
		}
	}

	return uuid.NewSHA1(fingerprintSpace, []byte(sb.String()))
}

// field encodes s as "<len>:<s>".
func field(s string) string {
	return strconv.Itoa(len(s)) + ":" + s
}

// encodeProduction writes the kind and only the fields that kind uses.
func encodeProduction(p grammar.Production) string {
	head := strconv.Itoa(int(p.Kind)) + field(string(p.Head))
	switch p.Kind {
	case grammar.KindTerminal:
		return head + field(p.Terminal)
	case grammar.KindBinary:
		return head + field(string(p.Left)) + field(string(p.Right))
	default:
		return head
	}
}

// dedup removes adjacent duplicates from a sorted slice.
func dedup(s []string) []string {
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}

	return out
}
