package service

// Actor is the authenticated identity a request acts as. Handlers build it
// from the verified token claims; the services never read identity from
// anywhere else.
type Actor struct {
	ID    uint
	Staff bool
}
