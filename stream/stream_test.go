package stream

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"
)

func divideByTwo(n int) int {
	return n / 2
}

func isNonZero(n int) bool {
	return n != 0
}

func TestStream1(t *testing.T) {
	data := []int{0, 2, 4, 6, 8}
	ctx := context.Background()
	myStream := Slice(ctx, data)
	result := Collect(ctx,
		Transform(ctx, divideByTwo,
			Filter(ctx, isNonZero,
				myStream)))

	if !slices.Equal([]int{1, 2, 3, 4}, result) {
		t.Errorf("Expected [1, 2, 3, 4], got %v", result)
	}
}

func TestStream2(t *testing.T) {
	data := []int{0, 2, 4, 6, 8}
	ctx := context.Background()
	s := Slice(ctx, data)
	tf := Transform(ctx, divideByTwo, s)
	f := Filter(ctx, isNonZero, tf)
	result := Collect(ctx, f)

	if !slices.Equal([]int{1, 2, 3, 4}, result) {
		t.Errorf("Expected [1, 2, 3, 4], got %v", result)
	}
}

func TestCollectCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	never := make(chan int)
	if got := Collect(ctx, never); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestScanLines(t *testing.T) {
	ctx := context.Background()
	lines, errs := ScanLines(ctx, strings.NewReader("a\n\nb\nc"))
	got := Collect(ctx, lines)
	if err := <-errs; err != nil {
		t.Fatal(err)
	}
	want := []Line{{1, "a"}, {2, ""}, {3, "b"}, {4, "c"}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanLinesError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("a\nb\n"), iotest.ErrReader(boom))
	lines, errs := ScanLines(ctx, r)
	got := Collect(ctx, lines)
	if len(got) != 2 {
		t.Errorf("got %v", got)
	}
	if err := <-errs; !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
	if _, ok := <-errs; ok {
		t.Error("errs not closed")
	}
}
