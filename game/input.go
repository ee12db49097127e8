package game

// Command is a user action shared by every input source.
type Command uint8

const (
	CmdNone Command = iota
	CmdToggleMode
	CmdTogglePause
	CmdSlower
	CmdFaster
	CmdQuit
)

// CommandForKey maps a typed character to a command. Every display backend
// reports keys as runes.
func CommandForKey(r rune) Command {
	switch r {
	case 'm', 'M':
		return CmdToggleMode
	case ' ':
		return CmdTogglePause
	case ',', '<':
		return CmdSlower
	case '.', '>':
		return CmdFaster
	case 'q', 'Q':
		return CmdQuit
	}
	return CmdNone
}

// Apply executes a command. It returns false when the command asks to quit.
func (g *Game) Apply(cmd Command) bool {
	switch cmd {
	case CmdToggleMode:
		g.ToggleMode()
	case CmdTogglePause:
		g.TogglePause()
	case CmdSlower:
		g.SetSpeed(g.speed - 1)
	case CmdFaster:
		g.SetSpeed(g.speed + 1)
	case CmdQuit:
		return false
	}
	return true
}
