package asyncgen_test

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/b97tsk/asyncgen"
)

func Example() {
	g := asyncgen.FromSlice([]float64{4.5, 0.25, 9})

	s, err := asyncgen.CollectAll(context.Background(), g)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(s)

	// Output:
	// [4.5 0.25 9]
}

// This example demonstrates how a failure of a generator reaches the caller,
// along with every value collected before it.
func Example_failure() {
	g := asyncgen.NewGenerator(func(ctx context.Context, yield func(int) bool) error {
		for i := range 3 {
			if !yield(i) {
				return nil
			}
		}
		return errors.New("out of numbers")
	})

	s, err := asyncgen.CollectAll(context.Background(), g)

	fmt.Println(s)
	fmt.Println(err)

	// Output:
	// [0 1 2]
	// out of numbers
}

// This example demonstrates how to set up an executor that runs whenever
// a coroutine is spawned or resumed, and how coroutines await a WaitGroup.
func Example_executor() {
	var myExecutor asyncgen.Executor

	myExecutor.Autorun(myExecutor.Run)

	var wg asyncgen.WaitGroup

	wg.Add(2) // Note that asyncgen.WaitGroup is not safe for concurrent use.

	myExecutor.Spawn(wg.Await().Then(asyncgen.Do(func() {
		fmt.Println("all done")
	})))

	myExecutor.Spawn(asyncgen.Do(func() {
		fmt.Println("one")
		wg.Done()
	}))

	myExecutor.Spawn(asyncgen.Do(func() {
		fmt.Println("two")
		wg.Done()
	}))

	// Output:
	// one
	// two
	// all done
}

func ExampleCollect() {
	var s1, s2 []string

	g1 := asyncgen.FromSlice([]string{"a", "b"})
	g2 := asyncgen.FromSlice([]string{"c", "d", "e"})

	err := asyncgen.Run(context.Background(), asyncgen.Block(
		asyncgen.Join(
			asyncgen.Collect(g1, &s1),
			asyncgen.Collect(g2, &s2),
		),
		asyncgen.Do(func() {
			fmt.Println(s1, s2)
		}),
	))
	if err != nil {
		fmt.Println(err)
	}

	// Output:
	// [a b] [c d e]
}

func ExampleFromSeq() {
	squares := func(yield func(int) bool) {
		for i := 1; i <= 4; i++ {
			if !yield(i * i) {
				return
			}
		}
	}

	s, _ := asyncgen.CollectAll(context.Background(), asyncgen.FromSeq(iter.Seq[int](squares)))

	fmt.Println(s)

	// Output:
	// [1 4 9 16]
}

func ExampleGenerator_Next() {
	g := asyncgen.FromSlice([]int{10, 20, 30})

	var (
		v  int
		ok bool
	)

	next := g.Next(&v, &ok)

	err := asyncgen.Run(context.Background(), asyncgen.Block(
		next,
		asyncgen.Do(func() { fmt.Println(v, ok) }),
		next,
		asyncgen.Do(func() { fmt.Println(v, ok) }),
		asyncgen.Do(g.Close),
	))
	if err != nil {
		fmt.Println(err)
	}

	// Output:
	// 10 true
	// 20 true
}

func ExampleTry() {
	var err error

	boom := errors.New("boom")

	_ = asyncgen.Run(context.Background(), asyncgen.Block(
		asyncgen.Try(asyncgen.Throw(boom), &err),
		asyncgen.Do(func() {
			fmt.Println(errors.Is(err, boom))
		}),
	))

	// Output:
	// true
}
