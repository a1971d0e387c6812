// Package forms defines declarative form configuration: typed field
// descriptors with validation rules and conditional inclusion, a YAML/JSON
// loader, server-side rule evaluation, and derivation of definitions from
// OpenAPI operations. It deliberately stops short of building HTML; the
// definitions are the contract a rendering layer consumes.
package forms
