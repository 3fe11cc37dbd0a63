package player

import (
	"context"
	"errors"
	"sync"
)

var ErrPlaybackInProgress = errors.New("playback already in progress")

// Playback tracks the song currently playing so it can be stopped. Stop
// returns only after the running play function has returned, so the device
// can be closed afterwards without a send racing against it.
type Playback struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Run calls play with a context cancelled by Stop. Only one play function runs
// at a time.
func (pb *Playback) Run(ctx context.Context, play func(ctx context.Context) error) error {
	pb.mu.Lock()
	if pb.done != nil {
		pb.mu.Unlock()
		return ErrPlaybackInProgress
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	pb.cancel, pb.done = cancel, done
	pb.mu.Unlock()

	defer func() {
		cancel()
		pb.mu.Lock()
		pb.cancel, pb.done = nil, nil
		pb.mu.Unlock()
		close(done)
	}()
	return play(ctx)
}

// Active reports whether a play function is running.
func (pb *Playback) Active() bool {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.done != nil
}

// Stop cancels the running play function and waits for it to return. It
// reports whether anything was playing.
func (pb *Playback) Stop() bool {
	pb.mu.Lock()
	cancel, done := pb.cancel, pb.done
	pb.mu.Unlock()

	if done == nil {
		return false
	}
	cancel()
	<-done
	return true
}
