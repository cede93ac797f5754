package main

import (
	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/browser"
	"github.com/abdellahzou/HiResume/internal/config"
	"github.com/abdellahzou/HiResume/internal/export"
	"github.com/abdellahzou/HiResume/internal/layout"
)

// newExporter builds the exporter described by the loaded config. A browser
// is started when the config measures with it or when needPrinter is set;
// the returned func stops it.
func newExporter(needPrinter bool, extra ...export.Option) (*export.Exporter, func(), error) {
	opts := []export.Option{
		export.WithLogger(log),
		export.WithFitter(autofit.NewFitter(appConfig.Fit.Options, log)),
	}
	cleanup := func() {}

	if appConfig.Fit.Measurer == config.MeasurerNone {
		opts = append(opts, export.WithMeasurer(nil))
	}
	if appConfig.Fit.Measurer == config.MeasurerBrowser || needPrinter {
		b, err := browser.New(browser.Config{
			Timeout:  appConfig.Browser.Timeout,
			ExecPath: appConfig.Browser.ChromePath,
		}, log)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = b.Close
		opts = append(opts, export.WithPrinter(b))
		if appConfig.Fit.Measurer == config.MeasurerBrowser {
			opts = append(opts, export.WithMeasurer(func(tree *layout.Node, o layout.HTMLOptions) autofit.Measurer {
				return b.Measurer(tree, o)
			}))
		}
	}
	return export.New(append(opts, extra...)...), cleanup, nil
}
