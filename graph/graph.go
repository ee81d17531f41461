// Package graph derives the pipeline views of a parsed configuration: the
// components it declares and the links between them.
package graph

import (
	"fmt"

	"github.com/KimNorgaard/go-prototxt"
)

// Config names the fields the projections read.
type Config struct {
	// GraphField is the top-level field declaring a graph.
	GraphField string `yaml:"graph_field"`
	// GraphNameField names a graph declaration.
	GraphNameField string `yaml:"graph_name_field"`
	// EdgeField is the field inside a graph declaration that declares an edge.
	EdgeField string `yaml:"edge_field"`
	// SourceField and TargetField name the edge endpoints.
	SourceField string `yaml:"source_field"`
	TargetField string `yaml:"target_field"`
	// TypeField classifies an edge, e.g. LOCAL or REMOTE.
	TypeField string `yaml:"type_field"`
	// NodeField names the node an edge declaration belongs to.
	NodeField string `yaml:"node_field"`
	// ComponentField is the top-level field declaring a component.
	ComponentField string `yaml:"component_field"`
	// ComponentNameField and ComponentTypeField are read from each component.
	ComponentNameField string `yaml:"component_name_field"`
	ComponentTypeField string `yaml:"component_type_field"`
}

// DefaultConfig returns the field names of the pipeline configuration
// format.
func DefaultConfig() Config {
	return Config{
		GraphField:         "graphParam",
		GraphNameField:     "name",
		EdgeField:          "StaticDAGParam",
		SourceField:        "in_name",
		TargetField:        "out_name",
		TypeField:          "node_type",
		NodeField:          "node_name",
		ComponentField:     "componentParam",
		ComponentNameField: "name",
		ComponentTypeField: "type",
	}
}

// withDefaults fills empty names from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.GraphField, d.GraphField)
	fill(&c.GraphNameField, d.GraphNameField)
	fill(&c.EdgeField, d.EdgeField)
	fill(&c.SourceField, d.SourceField)
	fill(&c.TargetField, d.TargetField)
	fill(&c.TypeField, d.TypeField)
	fill(&c.NodeField, d.NodeField)
	fill(&c.ComponentField, d.ComponentField)
	fill(&c.ComponentNameField, d.ComponentNameField)
	fill(&c.ComponentTypeField, d.ComponentTypeField)
	return c
}

// Node is a pipeline node, identified by name.
type Node struct {
	ID string `json:"id"`
}

// Link is one edge declaration. Source and Target may be empty: an empty
// source marks the entry of a graph, an empty target its exit.
type Link struct {
	Graph  string `json:"graph,omitempty"`
	Node   string `json:"node,omitempty"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Graph is one graph declaration.
type Graph struct {
	Name  string `json:"name"`
	Links []Link `json:"links"`
}

// Component is one component declaration.
type Component struct {
	Name string             `json:"name"`
	Type string             `json:"type"`
	Doc  *prototxt.Document `json:"-"`
}

// Data holds every projection of one document.
type Data struct {
	Graphs     []Graph
	Links      []Link
	Nodes      []Node
	Components []Component

	cfg Config
}

// Extract reads graphs and components out of doc. Missing fields yield
// empty projections; Extract does not fail.
func Extract(doc *prototxt.Document, cfg Config) *Data {
	cfg = cfg.withDefaults()
	d := &Data{cfg: cfg}

	for _, v := range doc.Lookup(cfg.ComponentField) {
		msg, ok := v.(*prototxt.Document)
		if !ok {
			continue
		}
		d.Components = append(d.Components, Component{
			Name: text(msg, cfg.ComponentNameField),
			Type: text(msg, cfg.ComponentTypeField),
			Doc:  msg,
		})
	}

	seen := make(map[string]bool)
	addNode := func(id string) {
		if !seen[id] {
			seen[id] = true
			d.Nodes = append(d.Nodes, Node{ID: id})
		}
	}
	for _, v := range doc.Lookup(cfg.GraphField) {
		msg, ok := v.(*prototxt.Document)
		if !ok {
			continue
		}
		g := Graph{Name: text(msg, cfg.GraphNameField), Links: []Link{}}
		for _, ev := range msg.Lookup(cfg.EdgeField) {
			edge, ok := ev.(*prototxt.Document)
			if !ok {
				continue
			}
			l := Link{
				Graph:  g.Name,
				Node:   text(edge, cfg.NodeField),
				Source: text(edge, cfg.SourceField),
				Target: text(edge, cfg.TargetField),
				Type:   text(edge, cfg.TypeField),
			}
			g.Links = append(g.Links, l)
			d.Links = append(d.Links, l)
			addNode(l.Source)
			addNode(l.Target)
		}
		d.Graphs = append(d.Graphs, g)
	}
	return d
}

// Incoming returns the links whose target is name.
func (d *Data) Incoming(name string) []Link {
	return d.filter(func(l Link) bool { return l.Target == name })
}

// Outgoing returns the links whose source is name.
func (d *Data) Outgoing(name string) []Link {
	return d.filter(func(l Link) bool { return l.Source == name })
}

func (d *Data) filter(keep func(Link) bool) []Link {
	var out []Link
	for _, l := range d.Links {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// Component returns a document holding every declaration of the named
// component under the component field, ready to be serialized for
// editing. It reports false if no component has that name.
func (d *Data) Component(name string) (*prototxt.Document, bool) {
	var fields []prototxt.Field
	for _, c := range d.Components {
		if c.Name == name {
			fields = append(fields, prototxt.Field{Name: d.cfg.ComponentField, Value: c.Doc})
		}
	}
	if len(fields) == 0 {
		return nil, false
	}
	return prototxt.FromFields(fields...), true
}

// Problem is a link endpoint that names no declared component.
type Problem struct {
	Graph string
	Link  Link
	Name  string
}

func (p Problem) Error() string {
	return fmt.Sprintf("graph %q: node %q links to undeclared component %q", p.Graph, p.Link.Node, p.Name)
}

// Validate reports link endpoints that are not declared components. Empty
// endpoints are allowed.
func (d *Data) Validate() []Problem {
	declared := make(map[string]bool, len(d.Components))
	for _, c := range d.Components {
		declared[c.Name] = true
	}
	var problems []Problem
	for _, l := range d.Links {
		for _, name := range []string{l.Source, l.Target} {
			if name != "" && !declared[name] {
				problems = append(problems, Problem{Graph: l.Graph, Link: l, Name: name})
			}
		}
	}
	return problems
}

// text returns a scalar field as text. Strings and identifiers give their
// text, numbers and booleans their written form, anything else "". For a
// repeated field the first occurrence is used.
func text(doc *prototxt.Document, name string) string {
	vs := doc.Lookup(name)
	if len(vs) == 0 {
		return ""
	}
	switch v := vs[0].(type) {
	case prototxt.String:
		return string(v)
	case prototxt.Identifier:
		return string(v)
	case prototxt.Number:
		return v.String()
	case prototxt.Bool:
		return v.String()
	}
	return ""
}
