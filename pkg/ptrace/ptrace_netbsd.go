package ptrace

const platform = "netbsd"

const (
	ptReadI    = 1
	ptReadD    = 2
	ptWriteI   = 4
	ptWriteD   = 5
	ptContinue = 7
	ptKill     = 8
	ptAttach   = 9
	ptDetach   = 10
)

const detachAddr = 0
