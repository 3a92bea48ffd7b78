package i2c

// Transport submits a compiled transaction to the controller. The whole list
// goes out in one native call; there is no partial submission.
type Transport interface {
	Transfer(msgs []Message) error
	Close() error
}
