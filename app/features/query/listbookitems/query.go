package listbookitems

const (
	queryType = "ListBookItems"
)

// Query represents the intent to list book items matching all given parameters.
type Query struct {
	Params map[string]string
}

// BuildQuery creates a Query. Blank parameter values are ignored.
func BuildQuery(params map[string]string) Query {
	return Query{Params: params}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
