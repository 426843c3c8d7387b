package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"

	"github.com/itshivams/image-processing-system/internal/infrastructure"
	kafkapc "github.com/itshivams/image-processing-system/internal/infrastructure/kafka"
	"github.com/itshivams/image-processing-system/internal/usecase"
	"github.com/itshivams/image-processing-system/pkg/logger"
)

// KafkaController consumes job messages with a fixed worker pool. Offsets
// are committed only after a job is fully processed, so a processing failure
// leaves the message uncommitted and the queue's redelivery retries it.
type KafkaController struct {
	processor  usecase.JobProcessorUseCase
	ec         *kafkapc.EventConsumer
	deadLetter infrastructure.DeadLetterSender
	validate   *validator.Validate
	logger     logger.Interface

	commitTimeout  time.Duration
	processTimeout time.Duration

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started atomic.Bool
}

func New(
	processor usecase.JobProcessorUseCase,
	ec *kafkapc.EventConsumer,
	deadLetter infrastructure.DeadLetterSender,
	l logger.Interface,
	commitTimeout time.Duration,
	processTimeout time.Duration,
	workers int,
) *KafkaController {
	return &KafkaController{
		processor:      processor,
		ec:             ec,
		deadLetter:     deadLetter,
		validate:       validator.New(),
		logger:         l,
		commitTimeout:  commitTimeout,
		processTimeout: processTimeout,
		workers:        workers,
	}
}

func (c *KafkaController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("KafkaController - Start - controller already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	tasks := make(chan kafka.Message, c.workers*2)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(tasks)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(tasks)

		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				event, err := c.ec.ReadEvent(c.ctx)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						c.logger.Error(err, "KafkaController - Start - c.ec.ReadEvent")
					}
					continue
				}

				select {
				case tasks <- event:
				case <-c.ctx.Done():
					return
				}
			}
		}
	}()

	return nil
}

func (c *KafkaController) worker(tasks <-chan kafka.Message) {
	defer c.wg.Done()

	for event := range tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error(fmt.Errorf("panic %v", r), "KafkaController - worker - panic")
				}
			}()

			payload, err := decodeJobPayload(event.Value, c.validate)
			if err != nil {
				c.logger.Error(err, "KafkaController - worker - decodeJobPayload")
				c.rejectEvent(event)

				return
			}

			processCtx, processCancel := context.WithTimeout(c.ctx, c.processTimeout)
			err = c.processor.ProcessJob(processCtx, payload.toJob())
			processCancel()
			if err != nil {
				// no commit: the queue redelivers and the whole job reruns
				c.logger.Error(err, "KafkaController - worker - c.processor.ProcessJob")

				return
			}

			c.commitEvent(event)
		}()
	}
}

// rejectEvent forwards a malformed message to the dead-letter topic and
// commits it so the consumer keeps draining.
func (c *KafkaController) rejectEvent(event kafka.Message) {
	dlqCtx, dlqCancel := context.WithTimeout(c.ctx, c.commitTimeout)
	err := c.deadLetter.SendDeadLetter(dlqCtx, event.Key, event.Value)
	dlqCancel()
	if err != nil {
		c.logger.Error(err, "KafkaController - rejectEvent - c.deadLetter.SendDeadLetter")
	}

	c.commitEvent(event)
}

func (c *KafkaController) commitEvent(event kafka.Message) {
	commitCtx, commitCancel := context.WithTimeout(c.ctx, c.commitTimeout)
	err := c.ec.CommitEvent(commitCtx, event)
	commitCancel()
	if err != nil {
		c.logger.Error(err, "KafkaController - commitEvent - c.ec.CommitEvent")
	}
}

func (c *KafkaController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		c.ec.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
