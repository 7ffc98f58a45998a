package component

// TargetTag names an entity cameras can follow or look at.
type TargetTag struct {
	Name string
}

var TargetTagComponent = NewComponent[TargetTag]()
