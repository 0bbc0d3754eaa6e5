package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// blockingProvider waits for its context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_MapsDeadlineToErrTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	var to *ErrTimeout
	if !errors.As(err, &to) {
		t.Fatalf("expected ErrTimeout, got %T (%v)", err, err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("ErrTimeout should unwrap to context.DeadlineExceeded")
	}
}

func TestTimeout_ParentCancellationPassesThrough(t *testing.T) {
	p := WithTimeout(blockingProvider{}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var to *ErrTimeout
	if errors.As(err, &to) {
		t.Fatal("parent cancellation must not be reported as a timeout")
	}
}

func TestTimeout_FastCallSucceeds(t *testing.T) {
	p := WithTimeout(NewMockText("quick"), time.Second)
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "quick" {
		t.Fatalf("unexpected content %q", resp.Content)
	}
}

func TestTimeout_ZeroDisables(t *testing.T) {
	mock := NewMockText("x")
	if WithTimeout(mock, 0) != Provider(mock) {
		t.Fatal("zero timeout should return the provider unchanged")
	}
}
