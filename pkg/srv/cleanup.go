package srv

import "context"

// CloseFunc is a Service that only acts on shutdown. It adapts closers such as
// (*sql.DB).Close so they run after the transports have stopped.
type CloseFunc func() error

func (CloseFunc) Start(context.Context) error {
	return nil
}

func (f CloseFunc) Shutdown(context.Context) error {
	if f == nil {
		return nil
	}
	return f()
}

func NewCleanup(fn func() error) Service {
	return CloseFunc(fn)
}
