// Package steps provides a set of handlers for init command chain of responsibility.
package steps

import (
	create_ctx "github.com/ctemplate/ct/cli/create/context"
)

// Step is an interface for single step in create chain.
type Step interface {
	Run(ctx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error
}
