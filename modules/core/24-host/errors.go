package host

import errorsmod "cosmossdk.io/errors"

// SubModuleName is the ICS-24 error registration namespace.
const SubModuleName = "ibc/24-host"

// ErrInvalidID is returned when an identifier fails length, charset or
// structural validation.
var ErrInvalidID = errorsmod.Register(SubModuleName, 2, "invalid identifier")
