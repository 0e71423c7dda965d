package provider

import "context"

// Adapt presents a provider of [BI, BO] as one of [I, O]. The batch runner
// uses it to feed JSONL records to a query-string provider.
//
// Errors from in, the inner provider and out are returned unchanged; an
// error from in skips the inner call.
func Adapt[I, O, BI, BO any](
	inner RequestResponse[BI, BO],
	name string,
	in func(ctx context.Context, input I) (BI, error),
	out func(output BO) (O, error),
) RequestResponse[I, O] {
	return &adapter[I, O, BI, BO]{inner: inner, name: name, in: in, out: out}
}

type adapter[I, O, BI, BO any] struct {
	inner RequestResponse[BI, BO]
	name  string
	in    func(context.Context, I) (BI, error)
	out   func(BO) (O, error)
}

func (a *adapter[I, O, BI, BO]) Name() string { return a.name }

func (a *adapter[I, O, BI, BO]) IsAvailable(ctx context.Context) bool {
	return a.inner.IsAvailable(ctx)
}

func (a *adapter[I, O, BI, BO]) Execute(ctx context.Context, input I) (result O, err error) {
	bi, err := a.in(ctx, input)
	if err != nil {
		return result, err
	}
	bo, err := a.inner.Execute(ctx, bi)
	if err != nil {
		return result, err
	}
	return a.out(bo)
}
