package list

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/ctemplate/ct/cli/templates"
)

func TestListTemplates(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	ListTemplates(&buf, "/templates", []templates.Template{
		{Name: "cpp", Info: templates.Info{Description: "C++ project"}},
		{Name: "go"},
	})

	output := buf.String()
	assert.Contains(t, output, "Templates in /templates:")
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "DESCRIPTION")
	assert.Regexp(t, `cpp\s+C\+\+ project`, output)
	assert.Regexp(t, `go\s+-`, output)
}

func TestListTemplatesEmpty(t *testing.T) {
	var buf bytes.Buffer
	ListTemplates(&buf, "/templates", nil)
	assert.Equal(t, "There are no templates in /templates\n", buf.String())
}
