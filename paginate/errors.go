package paginate

import "errors"

// Locked-operation errors. Each navigation operation fails with its own
// sentinel when its lock flag is set; no fetch runs and no state mutates.
var (
	ErrJumpLocked           = errors.New("paginate: jump is locked")
	ErrGoNextPageLocked     = errors.New("paginate: go next page is locked")
	ErrGoPreviousPageLocked = errors.New("paginate: go previous page is locked")
	ErrRestartLocked        = errors.New("paginate: restart is locked")
	ErrRefreshLocked        = errors.New("paginate: refresh is locked")
)

// ErrPageOutOfRange is returned when a bookmark or edge navigation
// resolves to a page index below 1.
var ErrPageOutOfRange = errors.New("paginate: page out of range")
