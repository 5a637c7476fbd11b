package input

import "github.com/google/uuid"

// Owner identifies the code that registered a callback or observer so all
// of its registrations can be dropped together when it unloads.
type Owner struct {
	id    uuid.UUID
	label string
}

// NoOwner is the zero owner. Registrations under it are only removed one
// handle at a time.
var NoOwner Owner

// NewOwner returns a fresh owner token. The label is only for logs.
func NewOwner(label string) Owner {
	return Owner{id: uuid.New(), label: label}
}

func (o Owner) String() string {
	if o == NoOwner {
		return "none"
	}
	if o.label == "" {
		return o.id.String()
	}
	return o.label + "/" + o.id.String()
}
