// Package list prints available templates.
package list

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ctemplate/ct/cli/templates"
	"github.com/ctemplate/ct/cli/util"
)

// styleWithoutGraphics defines a style without graphics like below:
// NAME   DESCRIPTION
// cpp    C++ project
// go     Go module
var styleWithoutGraphics = table.BoxStyle{
	BottomLeft:       " ",
	BottomRight:      " ",
	BottomSeparator:  " ",
	EmptySeparator:   text.RepeatAndTrim(" ", text.RuneWidthWithoutEscSequences(" ")),
	Left:             " ",
	LeftSeparator:    " ",
	MiddleHorizontal: " ",
	MiddleSeparator:  " ",
	MiddleVertical:   " ",
	PaddingLeft:      " ",
	PaddingRight:     " ",
	PageSeparator:    "\n",
	Right:            " ",
	RightSeparator:   " ",
	TopLeft:          " ",
	TopRight:         " ",
	TopSeparator:     " ",
	UnfinishedRow:    "  ",
}

// noDescription is shown for templates without description.
const noDescription = "-"

// ListTemplates writes the templates table to writer.
func ListTemplates(writer io.Writer, templatesDir string, templatesList []templates.Template) {
	if len(templatesList) == 0 {
		fmt.Fprintf(writer, "There are no templates in %s\n", templatesDir)
		return
	}

	fmt.Fprintf(writer, "%s\n", util.Bold(fmt.Sprintf("Templates in %s:", templatesDir)))

	t := table.NewWriter()
	t.SetOutputMirror(writer)
	t.SetStyle(table.Style{Box: styleWithoutGraphics})
	t.AppendHeader(table.Row{"NAME", "DESCRIPTION"})
	for _, template := range templatesList {
		description := template.Info.Description
		if description == "" {
			description = noDescription
		}
		t.AppendRow(table.Row{color.GreenString(template.Name), description})
	}
	t.Render()
}
