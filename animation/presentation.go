package animation

// Element is an opaque reference to something with style properties. Only
// the Selector and Accessor that produced it know its concrete type.
type Element any

// Selector resolves selector text ("#id", ".class", "tag") to elements, in
// document order. No match is an empty result, not an error.
type Selector interface {
	Select(selector string) []Element
}

// Accessor reads and writes presentation values as text.
type Accessor interface {
	Read(el Element, property string) (string, error)
	Write(el Element, property, value string) error
}
