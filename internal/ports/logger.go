package ports

import "github.com/perflab-io/ckptreplay/pkg/log"

// Logger is the structured logging port used by the application layer.
// It forwards to the pkg/log abstraction so adapters and library users share
// one logger shape.
type Logger = log.Logger

// Field is a structured logging key-value pair.
type Field = log.Field

// Field constructors re-exported for the application layer.
var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
