package datalib

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"
)

// NewModule creates an Fx module providing a named *Library for the given
// active root. The name is used as both the module name and the DI named tag,
// so several libraries with different roots can coexist in one container.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name, root string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	return fx.Module(name,
		fx.Provide(
			fx.Annotate(
				func() (*Library, error) {
					return New(root, opts...)
				},
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
			),
		),
		fx.Invoke(
			fx.Annotate(
				func(lib *Library) {
					slog.Info("library initialized",
						"name", name,
						"root", lib.Root(),
						"default_root", lib.DefaultRoot())
				},
				fx.ParamTags(fmt.Sprintf(`name:"%s"`, name)),
			),
		),
	)
}
