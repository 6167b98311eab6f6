package databases

import "go.mongodb.org/mongo-driver/mongo/options"

type mongoPaginate struct {
	limit int64
	page  int64
}

func newMongoPaginate(limit, page int64) *mongoPaginate {
	return &mongoPaginate{
		limit: limit,
		page:  page,
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	l := mp.limit
	skip := mp.page * mp.limit
	return &options.FindOptions{Limit: &l, Skip: &skip}
}

// PaginatedOpts returns find options applying the given limit and zero-based
// page
func PaginatedOpts(limit, page int64) *options.FindOptions {
	return newMongoPaginate(limit, page).getPaginatedOpts()
}
