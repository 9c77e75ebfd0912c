package retriever

// Query is either a formulated text query or a request to search by
// embedding similarity only. The zero value is not a valid Query.
type Query interface {
	isQuery()
}

type FormulatedQuery struct {
	Text string
}

func (FormulatedQuery) isQuery() {}

type VectorOnlyQuery struct{}

func (VectorOnlyQuery) isQuery() {}

func Formulated(text string) Query {
	return FormulatedQuery{Text: text}
}

func VectorOnly() Query {
	return VectorOnlyQuery{}
}

// Text returns the query text and whether there is one.
func Text(q Query) (string, bool) {
	if f, ok := q.(FormulatedQuery); ok {
		return f.Text, true
	}
	return "", false
}
