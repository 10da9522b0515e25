package command

import "context"

type Command string

const (
	Exit Command = "exit"
	None Command = "none"
)

type Parser interface {
	ParseCommand(ctx context.Context, input string) (Command, error)
}
