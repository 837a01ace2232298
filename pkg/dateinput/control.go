package dateinput

// Control is the external value cell the widget reads and writes. It belongs
// to the containing form; the widget only holds a reference to it.
type Control interface {
	ValueReader
	SetValue(value string)
	MarkAsTouched()
	MarkAsDirty()
	// OnChange registers fn for every value change, including writes made by
	// the widget itself. The returned func removes the listener.
	OnChange(fn func(value string)) (cancel func())
}

// ValueReader exposes the current value of a field. Linked bounds only need
// this much.
type ValueReader interface {
	Value() string
}
