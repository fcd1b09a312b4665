package pagination

const (
	defaultLimit = 100

	// MaxLimit is the hard page-size cap; callers that walk every page
	// should request pages of exactly this size.
	MaxLimit = 250
)

// Pagination is the offset/limit paging contract shared by list endpoints.
type Pagination struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// Normalize clamps paging values to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
