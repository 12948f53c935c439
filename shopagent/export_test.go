package shopagent

// NewStream exposes newStream for tests.
var NewStream = newStream
