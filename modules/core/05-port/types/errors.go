package types

import (
	errorsmod "cosmossdk.io/errors"
)

// SubModuleName is the ICS-05 error registration namespace.
const SubModuleName = "ibc/05-port"

var (
	ErrPortNotFound = errorsmod.Register(SubModuleName, 2, "no module bound to port")
	ErrPortExists   = errorsmod.Register(SubModuleName, 3, "port already bound to a module")
)
