package cmd

import (
	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the cbs commands.
func Completion() *complete.Command {
	var methods predict.Set
	for _, m := range costbasis.Methods {
		methods = append(methods, m.String())
	}
	replay := map[string]complete.Predictor{
		"method":           methods,
		"fees":             predict.Nothing,
		"d":                predict.Something,
		"p":                predict.Something,
		"a":                predict.Something,
		"portfolio-method": predict.Something,
		"json":             predict.Nothing,
		"q":                predict.Something,
		"raw":              predict.Nothing,
	}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"position": {Flags: replay},
			"history":  {Flags: replay},
			"lots":     {Flags: replay},
			"check":    {Flags: replay},
			"fmt":      {Flags: map[string]complete.Predictor{"n": predict.Nothing}},
			"topic": {
				Flags: map[string]complete.Predictor{"l": predict.Nothing, "raw": predict.Nothing},
				Args:  predict.Set(topics),
			},
		},
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.jsonl"),
		},
	}
}
