package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
	"golang.org/x/sync/errgroup"
)

// maxListWorkers bounds the goroutines completing one list of objects.
const maxListWorkers = 32

var errNullValue = errors.New("the requested element is null which the schema does not allow")

// ResolveFunc resolves one field of obj, the Go value of the parent object
// (nil for root fields). args holds the coerced field arguments.
type ResolveFunc func(ctx context.Context, obj any, args map[string]any) (any, error)

// Resolvers maps an object type name and a field name to its ResolveFunc.
// Fields without an entry are read from the parent's JSON encoding under
// the field name.
type Resolvers map[string]map[string]ResolveFunc

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Executor runs query and mutation operations against a schema.
type Executor struct {
	schema    *ast.Schema
	resolvers Resolvers
	presenter graphql.ErrorPresenterFunc
}

// NewExecutor creates an Executor. presenter shapes every field error.
func NewExecutor(schema *ast.Schema, resolvers Resolvers, presenter graphql.ErrorPresenterFunc) *Executor {
	return &Executor{schema: schema, resolvers: resolvers, presenter: presenter}
}

// Execute parses, validates and runs req. The response carries nil Data
// when the request failed before execution started.
//
// Root mutation fields run in document order. Elements of a list of
// objects are completed concurrently so that per-request loaders can batch
// their lookups.
func (e *Executor) Execute(ctx context.Context, req Request) *graphql.Response {
	doc, errs := gqlparser.LoadQuery(e.schema, req.Query)
	if len(errs) > 0 {
		return &graphql.Response{Errors: errs}
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("operation %q not found", req.OperationName)}}
	}

	vars, err := validator.VariableValues(e.schema, op, req.Variables)
	if err != nil {
		return &graphql.Response{Errors: gqlerror.List{toGQLError(err)}}
	}

	var root *ast.Definition
	switch op.Operation {
	case ast.Query:
		root = e.schema.Query
	case ast.Mutation:
		root = e.schema.Mutation
	}
	if root == nil {
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("%s operations are not supported", op.Operation)}}
	}

	ex := &execution{executor: e, vars: vars}
	data, _ := ex.object(ctx, root, nil, op.SelectionSet, nil)

	raw, err := json.Marshal(data)
	if err != nil {
		ex.fail(ctx, nil, nil, fmt.Errorf("encode response: %w", err))
		raw = json.RawMessage("null")
	}
	return &graphql.Response{Data: raw, Errors: ex.errorList()}
}

func toGQLError(err error) *gqlerror.Error {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		return gqlErr
	}
	return gqlerror.Errorf("%s", err.Error())
}

// execution is the state of one operation run.
type execution struct {
	executor *Executor
	vars     map[string]any

	mu   sync.Mutex
	errs gqlerror.List
}

func (ex *execution) errorList() gqlerror.List {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	return ex.errs
}

func (ex *execution) fail(ctx context.Context, f *ast.Field, path ast.Path, err error) {
	gqlErr := ex.executor.presenter(ctx, err)
	if len(gqlErr.Path) == 0 {
		gqlErr.Path = path
	}
	if f != nil && f.Position != nil && len(gqlErr.Locations) == 0 {
		gqlErr.Locations = []gqlerror.Location{{Line: f.Position.Line, Column: f.Position.Column}}
	}

	ex.mu.Lock()
	ex.errs = append(ex.errs, gqlErr)
	ex.mu.Unlock()
}

// object completes obj against set. It reports false when a non-null field
// came back null and the parent must become null too.
func (ex *execution) object(ctx context.Context, def *ast.Definition, obj any, set ast.SelectionSet, path ast.Path) (any, bool) {
	fields := ex.collect(def.Name, set)
	out := make(orderedFields, 0, len(fields))

	var encoded map[string]any
	for _, f := range fields {
		key := responseKey(f)
		if f.Name == "__typename" {
			out = append(out, fieldValue{key: key, value: def.Name})
			continue
		}

		fieldPath := appendPath(path, ast.PathName(key))
		typ := fieldType(f)

		val, err := ex.resolve(ctx, def, obj, f, &encoded)
		if err != nil {
			ex.fail(ctx, f, fieldPath, err)
			if typ.NonNull {
				return nil, false
			}
			out = append(out, fieldValue{key: key})
			continue
		}

		res, ok := ex.complete(ctx, f, typ, val, fieldPath)
		if !ok {
			return nil, false
		}
		out = append(out, fieldValue{key: key, value: res})
	}
	return out, true
}

func (ex *execution) resolve(ctx context.Context, def *ast.Definition, obj any, f *ast.Field, encoded *map[string]any) (val any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("resolve %s.%s: panic: %v", def.Name, f.Name, p)
		}
	}()

	if strings.HasPrefix(f.Name, "__") {
		return nil, &gqlerror.Error{
			Message:    "introspection is not supported",
			Extensions: map[string]any{"code": "INTROSPECTION_DISABLED"},
		}
	}
	if fn, ok := ex.executor.resolvers[def.Name][f.Name]; ok {
		return fn(ctx, obj, f.ArgumentMap(ex.vars))
	}
	if isNil(obj) {
		return nil, nil
	}
	if *encoded == nil {
		m, err := toMap(obj)
		if err != nil {
			return nil, fmt.Errorf("resolve %s.%s: %w", def.Name, f.Name, err)
		}
		*encoded = m
	}
	return (*encoded)[f.Name], nil
}

// complete converts val to its response form for typ. It reports false
// only when typ is non-null and the value ended up null.
func (ex *execution) complete(ctx context.Context, f *ast.Field, typ *ast.Type, val any, path ast.Path) (any, bool) {
	if typ.Elem != nil {
		items, err := listItems(val)
		if err != nil {
			ex.fail(ctx, f, path, err)
			return nil, !typ.NonNull
		}

		out := make([]any, len(items))
		var nulled atomic.Bool
		ex.each(len(items), ex.isObject(typ.Elem), func(i int) {
			res, ok := ex.complete(ctx, f, typ.Elem, items[i], appendPath(path, ast.PathIndex(i)))
			if !ok {
				nulled.Store(true)
			}
			out[i] = res
		})
		if nulled.Load() {
			return nil, !typ.NonNull
		}
		return out, true
	}

	if isNil(val) {
		if typ.NonNull {
			ex.fail(ctx, f, path, errNullValue)
			return nil, false
		}
		return nil, true
	}

	if def := ex.executor.schema.Types[typ.NamedType]; def != nil && def.Kind == ast.Object {
		res, ok := ex.object(ctx, def, val, f.SelectionSet, path)
		if !ok {
			return nil, !typ.NonNull
		}
		return res, true
	}

	res, err := scalarValue(val)
	if err != nil {
		ex.fail(ctx, f, path, err)
		return nil, !typ.NonNull
	}
	return res, true
}

func (ex *execution) isObject(typ *ast.Type) bool {
	def := ex.executor.schema.Types[typ.Name()]
	return def != nil && def.Kind == ast.Object
}

// each runs fn for 0..n-1, concurrently when parallel is set.
func (ex *execution) each(n int, parallel bool, fn func(i int)) {
	if !parallel || n < 2 {
		for i := range n {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(maxListWorkers)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	g.Wait() //nolint:errcheck
}

// collect flattens fragments and merges fields sharing a response key, in
// document order.
func (ex *execution) collect(typeName string, set ast.SelectionSet) []*ast.Field {
	var (
		order []string
		byKey = make(map[string]*ast.Field)
	)

	var walk func(ast.SelectionSet)
	walk = func(set ast.SelectionSet) {
		for _, sel := range set {
			switch sel := sel.(type) {
			case *ast.Field:
				if ex.skipped(sel.Directives) {
					continue
				}
				key := responseKey(sel)
				prev, ok := byKey[key]
				if !ok {
					order = append(order, key)
					byKey[key] = sel
					continue
				}
				merged := *prev
				merged.SelectionSet = append(append(ast.SelectionSet{}, prev.SelectionSet...), sel.SelectionSet...)
				byKey[key] = &merged

			case *ast.InlineFragment:
				if ex.skipped(sel.Directives) || !typeMatches(sel.TypeCondition, typeName) {
					continue
				}
				walk(sel.SelectionSet)

			case *ast.FragmentSpread:
				if ex.skipped(sel.Directives) || sel.Definition == nil || !typeMatches(sel.Definition.TypeCondition, typeName) {
					continue
				}
				walk(sel.Definition.SelectionSet)
			}
		}
	}
	walk(set)

	fields := make([]*ast.Field, len(order))
	for i, key := range order {
		fields[i] = byKey[key]
	}
	return fields
}

// skipped applies @skip and @include.
func (ex *execution) skipped(dirs ast.DirectiveList) bool {
	if d := dirs.ForName("skip"); d != nil {
		if skip, _ := d.ArgumentMap(ex.vars)["if"].(bool); skip {
			return true
		}
	}
	if d := dirs.ForName("include"); d != nil {
		if include, _ := d.ArgumentMap(ex.vars)["if"].(bool); !include {
			return true
		}
	}
	return false
}

func typeMatches(condition, typeName string) bool {
	return condition == "" || condition == typeName
}

func responseKey(f *ast.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

func fieldType(f *ast.Field) *ast.Type {
	if f.Definition == nil || f.Definition.Type == nil {
		return &ast.Type{NamedType: "String"}
	}
	return f.Definition.Type
}

func appendPath(path ast.Path, el ast.PathElement) ast.Path {
	out := make(ast.Path, len(path), len(path)+1)
	copy(out, path)
	return append(out, el)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// listItems returns the elements of a slice or array value. A nil value is
// an empty list.
func listItems(val any) ([]any, error) {
	if isNil(val) {
		return []any{}, nil
	}
	if items, ok := val.([]any); ok {
		return items, nil
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a list, got %T", val)
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}

// toMap returns the JSON object form of v.
func toMap(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("encode %T as object: %w", v, err)
	}
	return m, nil
}

// scalarValue returns the JSON form of a leaf value. Named string types
// such as enums and UUIDs go through their JSON encoding.
func scalarValue(v any) (any, error) {
	switch v := v.(type) {
	case string, bool, float64, int, int64:
		return v, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %T: %w", v, err)
	}
	return out, nil
}

type fieldValue struct {
	key   string
	value any
}

// orderedFields is a response object that keeps selection order on the wire.
type orderedFields []fieldValue

func (o orderedFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
