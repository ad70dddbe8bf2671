package model

// ResourceKind is the category of bookable thing. Every kind shares the same
// reservation machinery; what differs is the conflict mode and lifecycle
// rules attached to it by the policy layer.
type ResourceKind string

const (
	KindRoom          ResourceKind = "room"
	KindInstallation  ResourceKind = "installation"
	KindEmployeeShift ResourceKind = "employee_shift"
	KindEmployeeLeave ResourceKind = "employee_leave"
	KindTrainingSlot  ResourceKind = "training_slot"
)

func AllResourceKinds() []ResourceKind {
	return []ResourceKind{
		KindRoom,
		KindInstallation,
		KindEmployeeShift,
		KindEmployeeLeave,
		KindTrainingSlot,
	}
}

func (k ResourceKind) Valid() bool {
	switch k {
	case KindRoom, KindInstallation, KindEmployeeShift, KindEmployeeLeave, KindTrainingSlot:
		return true
	}
	return false
}

// ResourceRef identifies a bookable resource. The ID is opaque to the
// reservation engine; it is only used as a partition key for locking and
// lookup.
type ResourceRef struct {
	Kind ResourceKind `json:"kind" bson:"kind" validate:"required,resource_kind"`
	ID   string       `json:"id" bson:"id" validate:"required,min=1,max=100"`
}

// Key returns the string used to partition guards and lock documents.
func (r ResourceRef) Key() string {
	return string(r.Kind) + ":" + r.ID
}
