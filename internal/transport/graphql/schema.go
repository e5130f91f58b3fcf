// Package graphql serves the breeding engine over GraphQL. The schema lives
// in schema.graphqls and is parsed and validated with gqlparser; field
// resolvers are registered per object type by the resolver package and
// errors are shaped by a gqlgen error presenter.
package graphql

import (
	_ "embed"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var schemaSDL string

var schema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSDL})

// Schema returns the parsed schema.
func Schema() *ast.Schema {
	return schema
}

// SDL returns the schema source text.
func SDL() string {
	return schemaSDL
}
