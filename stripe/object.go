package stripe

import (
	"slices"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/fdw"
)

// ObjectType names a Stripe resource the wrapper can scan. It doubles as
// the path segment under the API base URL.
type ObjectType string

const (
	ObjectBalance   ObjectType = "balance"
	ObjectCustomers ObjectType = "customers"
)

// objectSchema is the decoding rule for one object type: the top-level
// array holding records and the fields taken from each record, in column
// order.
type objectSchema struct {
	array   string
	columns []fdw.Column
}

var schemas = map[ObjectType]objectSchema{
	ObjectBalance: {
		array: "available",
		columns: []fdw.Column{
			{Name: "amount", Kind: fdw.KindInt64},
			{Name: "currency", Kind: fdw.KindString},
		},
	},
	ObjectCustomers: {
		array: "data",
		columns: []fdw.Column{
			{Name: "id", Kind: fdw.KindString},
			{Name: "email", Kind: fdw.KindString},
		},
	},
}

// ParseObjectType resolves a scan's object option. Unknown names yield
// UNSUPPORTED_OBJECT.
func ParseObjectType(name string) (ObjectType, error) {
	obj := ObjectType(name)
	if _, ok := schemas[obj]; !ok {
		return "", errors.UnsupportedObject(name)
	}
	return obj, nil
}

// Objects returns every supported object type, sorted by name.
func Objects() []ObjectType {
	out := make([]ObjectType, 0, len(schemas))
	for obj := range schemas {
		out = append(out, obj)
	}
	slices.Sort(out)
	return out
}

// Columns returns the columns produced for obj, nil if it is unsupported.
func Columns(obj ObjectType) []fdw.Column {
	s, ok := schemas[obj]
	if !ok {
		return nil
	}
	return slices.Clone(s.columns)
}

// RecordsField returns the top-level JSON array rows are read from.
func (o ObjectType) RecordsField() string {
	return schemas[o].array
}
