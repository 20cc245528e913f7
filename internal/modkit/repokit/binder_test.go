package repokit

import (
	"context"
	"errors"
	"testing"

	"hssearch/internal/platform/testkit"
)

// fakeTx is a TxRunner that hands itself to the callback
type fakeTx struct {
	calls []string
}

func (f *fakeTx) Exec(context.Context, string, ...any) (CommandTag, error) {
	f.calls = append(f.calls, "exec")
	return nil, nil
}

func (f *fakeTx) Query(context.Context, string, ...any) (Rows, error) {
	f.calls = append(f.calls, "query")
	return nil, nil
}

func (f *fakeTx) QueryRow(context.Context, string, ...any) Row {
	f.calls = append(f.calls, "queryrow")
	return nil
}

func (f *fakeTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	f.calls = append(f.calls, "tx")
	return fn(f)
}

type repo struct{ q Queryer }

func TestBindFunc(t *testing.T) {
	b := BindFunc[repo](func(q Queryer) repo { return repo{q: q} })
	tx := &fakeTx{}
	r := MustBind[repo](b, tx)
	if r.q != Queryer(tx) {
		t.Fatalf("bound queryer mismatch")
	}
}

func TestMustBindNilPanics(t *testing.T) {
	b := BindFunc[repo](func(q Queryer) repo { return repo{q: q} })
	defer func() {
		if recover() == nil {
			t.Fatalf("MustBind(nil) should panic")
		}
	}()
	MustBind[repo](b, nil)
}

func TestWithBeginHooks(t *testing.T) {
	tx := &fakeTx{}
	var order []string
	hooked := WithBeginHooks(tx,
		func(ctx context.Context, q Queryer) error { order = append(order, "hook1"); return nil },
		func(ctx context.Context, q Queryer) error { order = append(order, "hook2"); return nil },
	)

	err := hooked.Tx(context.Background(), func(q Queryer) error {
		order = append(order, "fn")
		return nil
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if len(order) != 3 || order[0] != "hook1" || order[1] != "hook2" || order[2] != "fn" {
		t.Fatalf("order = %v", order)
	}

	// hook error aborts before fn
	boom := errors.New("boom")
	hooked = WithBeginHooks(tx, func(context.Context, Queryer) error { return boom })
	err = hooked.Tx(context.Background(), func(q Queryer) error {
		t.Fatalf("fn should not run after hook failure")
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestMustGuard(t *testing.T) {
	ok := guardFunc(func(context.Context) error { return nil })
	testkit.MustNotPanic(t, func() { MustGuard(context.Background(), ok) })

	down := guardFunc(func(context.Context) error { return errors.New("down") })
	testkit.MustPanic(t, func() { MustGuard(context.Background(), down) })
}

type guardFunc func(context.Context) error

func (g guardFunc) Guard(ctx context.Context) error { return g(ctx) }
