package model

// Status is a lifecycle stage of an order.
type Status string

const (
	StatusPlaced         Status = "Order Placed"
	StatusPreparing      Status = "Preparing"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
)

var lifecycle = []Status{
	StatusPlaced,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
}

// Lifecycle returns the stages in the order an order moves through them.
func Lifecycle() []Status {
	out := make([]Status, len(lifecycle))
	copy(out, lifecycle)
	return out
}

func (s Status) index() int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the stage following s. The terminal stage maps to itself and
// an unknown stage maps to the initial one.
func (s Status) Next() Status {
	i := s.index()
	if i < len(lifecycle)-1 {
		return lifecycle[i+1]
	}
	return s
}

func (s Status) IsTerminal() bool {
	return s == lifecycle[len(lifecycle)-1]
}

func (s Status) Valid() bool {
	return s.index() >= 0
}

func (s Status) String() string {
	return string(s)
}
