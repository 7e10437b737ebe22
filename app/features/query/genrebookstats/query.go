package genrebookstats

const (
	queryType = "GenreBookStats"
)

// Query represents the intent to count the books per genre.
type Query struct{}

func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
