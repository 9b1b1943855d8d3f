package terminal

type commandGroup uint8

const (
	otherCmds commandGroup = iota
	runCmds
	memoryCmds
)

type commandGroupDescription struct {
	description string
	group       commandGroup
}

var commandGroupDescriptions = []commandGroupDescription{
	{"Controlling the process", runCmds},
	{"Reading and writing memory", memoryCmds},
	{"Other commands", otherCmds},
}
