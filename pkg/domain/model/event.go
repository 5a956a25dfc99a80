package model

type Event interface {
	Type() string
}

type OrderSubmitted struct {
	SessionID  string
	OrderID    uint
	CustomerID uint
}

func (OrderSubmitted) Type() string { return "order.submitted" }

type OrderSubmissionFailed struct {
	SessionID string
	Reason    string
}

func (OrderSubmissionFailed) Type() string { return "order.submission_failed" }

type CatalogRefreshed struct {
	SessionID string
	Products  int
}

func (CatalogRefreshed) Type() string { return "catalog.refreshed" }
