package kafka

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Run implements Feed.
//
// Every fetched message is decoded and its spans are passed to the receiver
// one by one, synchronously. The message is committed afterwards whether or
// not it could be decoded, so a malformed message is skipped rather than
// fetched again forever.
func (f *SpanFeed) Run(ctx context.Context) error {
	if f.reader == nil {
		return ErrFeedDisabled
	}

	f.log.InfoWithContext(ctx, "kafka span feed started", nil, map[string]interface{}{
		"topic":    f.cfg.Topic,
		"group_id": f.cfg.GroupID,
		"brokers":  f.cfg.Brokers,
	})

	for {
		select {
		case <-f.shutdownSignal:
			return nil
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()
		msg, err := f.reader.FetchMessage(ctx)
		if err != nil {
			if f.stopping(ctx, err) {
				return nil
			}

			err = TranslateError(err)
			f.observeOperation(OperationConsume, "", time.Since(start), err, 0)
			if IsPermanentError(err) {
				f.log.ErrorWithContext(ctx, "kafka span feed stopped", err, map[string]interface{}{"topic": f.cfg.Topic})
				return err
			}
			f.log.WarnWithContext(ctx, "failed to fetch kafka message", err, map[string]interface{}{"topic": f.cfg.Topic})
			f.pause(ctx)
			continue
		}
		f.observeOperation(OperationConsume, strconv.Itoa(msg.Partition), time.Since(start), nil, int64(len(msg.Value)))

		f.handle(ctx, msg)
		f.commit(ctx, msg)
	}
}

// handle decodes msg and submits its spans.
func (f *SpanFeed) handle(ctx context.Context, msg kafka.Message) {
	start := time.Now()
	partition := strconv.Itoa(msg.Partition)

	spans, err := f.decoder.Decode(msg.Value)
	if err != nil {
		f.log.WarnWithContext(ctx, "skipping undecodable kafka message", err, map[string]interface{}{
			"topic":     msg.Topic,
			"partition": msg.Partition,
			"offset":    msg.Offset,
			"bytes":     len(msg.Value),
		})
		f.observeOperation(OperationDecode, partition, time.Since(start), err, 0)
		return
	}

	for _, span := range spans {
		f.receiver.ReceiveSpanContext(ctx, span)
	}
	f.observeOperation(OperationDecode, partition, time.Since(start), nil, int64(len(spans)))
}

func (f *SpanFeed) commit(ctx context.Context, msg kafka.Message) {
	if f.cfg.GroupID == "" {
		return
	}

	// A shutdown must not lose the commit of a message already handled.
	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultCommitTimeout)
	defer cancel()

	start := time.Now()
	err := f.reader.CommitMessages(commitCtx, msg)
	f.observeOperation(OperationCommit, strconv.Itoa(msg.Partition), time.Since(start), err, 1)
	if err != nil {
		f.log.WarnWithContext(ctx, "failed to commit kafka message", err, map[string]interface{}{
			"topic":     msg.Topic,
			"partition": msg.Partition,
			"offset":    msg.Offset,
		})
	}
}

// stopping reports whether a fetch error was caused by shutdown.
func (f *SpanFeed) stopping(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.EOF) {
		return true
	}
	select {
	case <-f.shutdownSignal:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (f *SpanFeed) pause(ctx context.Context) {
	t := time.NewTimer(f.cfg.FetchBackoff)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	case <-f.shutdownSignal:
	}
}
