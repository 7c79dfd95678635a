package registry

import "github.com/fiscaladmin/gam-status/internal/model"

// defaultGraphs is the single source of truth for allowed transitions across
// the reconciliation pipeline. Error and manual-review states deliberately
// carry edges back to earlier states; those are operator-driven resets, not
// cycles to be "fixed". Statuses listed with no targets are terminal.
var defaultGraphs = map[model.EntityKind]Graph{
	model.KindStatement: {
		Transitions: map[model.Status][]model.Status{
			model.StatusNew:           {model.StatusImporting},
			model.StatusImporting:     {model.StatusImported, model.StatusError},
			model.StatusImported:      {model.StatusConsolidating},
			model.StatusConsolidating: {model.StatusConsolidated, model.StatusError},
			model.StatusConsolidated:  {model.StatusEnriched, model.StatusError},
			model.StatusEnriched:      {model.StatusPosted},
			model.StatusError:         {model.StatusNew},
		},
		Initial: []model.Status{model.StatusNew},
	},

	model.KindBankTrx: {
		Transitions: map[model.Status][]model.Status{
			model.StatusNew:          {model.StatusProcessing},
			model.StatusProcessing:   {model.StatusEnriched, model.StatusError, model.StatusManualReview},
			model.StatusEnriched:     {model.StatusPaired, model.StatusPostingReady, model.StatusManualReview},
			model.StatusPostingReady: {model.StatusPosted},
			model.StatusPaired:       {model.StatusPosted},
			model.StatusError:        {model.StatusNew},
			model.StatusManualReview: {model.StatusNew, model.StatusEnriched, model.StatusPostingReady},
		},
		Initial: []model.Status{model.StatusNew},
	},

	model.KindSecuTrx: {
		Transitions: map[model.Status][]model.Status{
			model.StatusNew:          {model.StatusProcessing},
			model.StatusProcessing:   {model.StatusEnriched, model.StatusError, model.StatusManualReview},
			model.StatusEnriched:     {model.StatusPaired, model.StatusUnmatched, model.StatusManualReview},
			model.StatusPaired:       {model.StatusPosted},
			model.StatusUnmatched:    {model.StatusPaired, model.StatusManualReview},
			model.StatusError:        {model.StatusNew},
			model.StatusManualReview: {model.StatusNew, model.StatusEnriched, model.StatusPaired},
		},
		Initial: []model.Status{model.StatusNew},
	},

	model.KindEnrichment: {
		Transitions: map[model.Status][]model.Status{
			model.StatusNew:          {model.StatusEnriched, model.StatusError, model.StatusManualReview},
			model.StatusEnriched:     {model.StatusPaired, model.StatusPostingReady, model.StatusUnmatched, model.StatusManualReview},
			model.StatusPaired:       {model.StatusPosted},
			model.StatusPostingReady: {model.StatusPosted},
			model.StatusUnmatched:    {model.StatusPaired, model.StatusManualReview},
			model.StatusError:        {model.StatusNew},
			model.StatusManualReview: {model.StatusNew, model.StatusEnriched, model.StatusPostingReady},
		},
		Initial: []model.Status{model.StatusNew},
	},

	model.KindPair: {
		Transitions: map[model.Status][]model.Status{
			model.StatusAutoAccepted:  {},
			model.StatusPendingReview: {model.StatusConfirmed, model.StatusRejected},
			model.StatusConfirmed:     {},
			model.StatusRejected:      {},
		},
		Initial: []model.Status{model.StatusAutoAccepted, model.StatusPendingReview},
	},

	model.KindException: {
		Transitions: map[model.Status][]model.Status{
			model.StatusOpen:       {model.StatusInProgress, model.StatusDismissed},
			model.StatusInProgress: {model.StatusResolved, model.StatusDismissed},
			model.StatusResolved:   {},
			model.StatusDismissed:  {},
		},
		Initial: []model.Status{model.StatusOpen},
	},
}

// Default returns the registry built from the canonical pipeline transition
// tables. The tables are compile-time constants validated by New; a failure
// here is a programming error, so Default panics rather than returning one.
func Default() *Registry {
	r, err := New(defaultGraphs)
	if err != nil {
		panic(err)
	}
	return r
}
