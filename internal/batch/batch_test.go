package batch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/matthewmueller/audit/internal/batch"
)

func TestOrder(t *testing.T) {
	is := is.New(t)
	b, _ := batch.New[int](context.Background())
	for i := range 5 {
		b.Go(func() (int, error) {
			// Later submissions finish first
			time.Sleep(time.Duration(5-i) * time.Millisecond)
			return i, nil
		})
	}
	results, err := b.Wait()
	is.NoErr(err)
	is.Equal(results, []int{0, 1, 2, 3, 4})
}

func TestError(t *testing.T) {
	is := is.New(t)
	b, ctx := batch.New[string](context.Background())
	b.Go(func() (string, error) {
		return "", errors.New("boom")
	})
	b.Go(func() (string, error) {
		<-ctx.Done()
		return "canceled", nil
	})
	_, err := b.Wait()
	is.True(err != nil)
	is.Equal(err.Error(), "boom")
}

func TestEmpty(t *testing.T) {
	is := is.New(t)
	b, _ := batch.New[int](context.Background())
	results, err := b.Wait()
	is.NoErr(err)
	is.Equal(len(results), 0)
}
