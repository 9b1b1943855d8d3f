package ptrace

const platform = "darwin"

const (
	ptReadI    = 1
	ptReadD    = 2
	ptWriteI   = 4
	ptWriteD   = 5
	ptContinue = 7
	ptKill     = 8
	ptAttach   = 10
	ptDetach   = 11
)

// The detach address is 1, resume where stopped.
const detachAddr = 1
