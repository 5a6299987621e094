package pipeline

// Message is one item on an inter-stage channel: either a value or the
// end-of-stream marker. The marker is a separate tag so no measurement can
// ever be mistaken for it.
type Message[T any] struct {
	Value T
	EOS   bool
}

// Data wraps v as a data message.
func Data[T any](v T) Message[T] {
	return Message[T]{Value: v}
}

// EndOfStream returns the marker a stage sends as its last message.
func EndOfStream[T any]() Message[T] {
	return Message[T]{EOS: true}
}
