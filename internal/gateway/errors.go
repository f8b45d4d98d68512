package gateway

import "fmt"

// Table names a logical table.
type Table string

const (
	// TableHardware holds hardware profiles.
	TableHardware Table = "hardware"
	// TableContainers holds containers in display order.
	TableContainers Table = "containers"
	// TableSettings holds the settings singleton.
	TableSettings Table = "settings"
)

// Op names a gateway request.
type Op string

const (
	// OpSave writes a full table.
	OpSave Op = "save"
	// OpLoad reads a full table.
	OpLoad Op = "load"
)

// Error is returned by every failing gateway request.
type Error struct {
	Op      Op
	Table   Table
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s table: %s", e.Op, e.Table, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op Op, table Table, err error) *Error {
	return &Error{Op: op, Table: table, Message: err.Error(), Err: err}
}
