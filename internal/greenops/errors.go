package greenops

type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for unit conversion.
const (
	ErrInvalidUnit   = constError("invalid carbon unit")
	ErrNegativeValue = constError("negative carbon value")
	ErrNotFinite     = constError("carbon value is not finite")
)
