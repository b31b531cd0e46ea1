package tui

type state int

const (
	menuState state = iota
	lookupState
	titlesState
	playerState
	errorState
)
