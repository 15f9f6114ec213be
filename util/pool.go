package util

import (
	"sync"
)

// Pool runs tasks on at most size goroutines and keeps the first error
type Pool struct {
	sem  chan struct{} // limit goroutine
	wg   sync.WaitGroup
	once sync.Once
	err  error
}

// Return New Pool
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Go blocks until a slot is free, then runs task
func (p *Pool) Go(task func() error) {
	p.wg.Add(1)
	p.sem <- struct{}{}

	go func() {
		defer func() {
			<-p.sem
			p.wg.Done()
		}()
		if err := task(); err != nil {
			p.once.Do(func() { p.err = err })
		}
	}()
}

// Wait For Task End
func (p *Pool) Wait() error {
	p.wg.Wait()
	return p.err
}
