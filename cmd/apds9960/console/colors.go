package console

import "github.com/fatih/color"

// Colors used by the command output
var (
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
	White  = color.New(color.FgHiWhite).SprintFunc()
)
