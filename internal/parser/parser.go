package parser

import (
	"errors"

	"git.lost.host/meutraa/stamina/internal/game"
)

var (
	ErrNoBPMs          = errors.New("no #BPMS tag before the first chart")
	ErrUnexpectedNotes = errors.New("notes outside of a #NOTES section")
)

type Parser interface {
	Parse(file string) ([]*game.Chart, error)
}
