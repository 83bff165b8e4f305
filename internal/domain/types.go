package domain

// Next is the navigation signal returned after a pipeline step succeeds.
type Next string

const (
	NextResults Next = "results"
	NextDetail  Next = "detail"
)

// Leg picks the outbound or return sailing of a round trip.
type Leg string

const (
	LegOutbound Leg = "outbound"
	LegReturn   Leg = "return"
)

func ParseLeg(s string) Leg {
	if s == string(LegReturn) {
		return LegReturn
	}
	return LegOutbound
}

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}

// Normalize clamps paging params to sane bounds.
func (p Pagination) Normalize(maxSize int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
