/*
Package worker provides a single-goroutine worker that transforms strings on demand.

# Overview

A Worker owns two queues and one goroutine:
- an input queue filled by AddData
- an output queue drained by GetData
- a goroutine that, once woken, moves every input item through a transform into the output

The goroutine only works while the worker is awake. It goes back to sleep on its
own once the input is empty, so the usual cycle is add, wake, settle, collect.

# States

	Asleep --WakeUp--> Awake --(input drained) or PutToSleep--> Asleep
	Asleep, Awake --Stop or fatal transform failure--> Stopped

Stopped is terminal. WakeUp after Stop is ignored.

# Wake-up Protocol

The awake and stopped flags live under one mutex, and the goroutine waits on a
sync.Cond tied to it. Flags are only changed while holding the mutex, and the
condition is signalled right after it is released. Before going back to sleep the
goroutine re-checks the input under the same mutex, so an AddData followed by
WakeUp can never be lost between the end of a drain and the return to sleep.

AddData does not wake the worker. Items stay queued until the next WakeUp.

# Failure Handling

Transforms are plain func(string) string values, so a failure is a panic. The
panic is recovered into a *types.TransformError carrying the item, the worker ID
and the stack trace, and passed to the optional ErrorHandler. A handler that
returns nil absorbs the failure and the item is skipped. Anything else it
returns is resolved by the configured FailurePolicy:
- FailFast (default): the worker stops and Err returns the failure
- ContinueOnError: the failure is logged, the item is dropped and draining continues

With no transform set, items are taken from the input and discarded.

# Shutdown

Stop is cooperative. A sleeping worker exits at once. A worker that is draining
finishes the drain first, including items added while it runs, and exits once
the input is empty. Stop also clears the awake flag, so IsAwake reports false
from then on. Close bounds the wait with JoinTimeout. Always release a worker
with Close, or Stop followed by Join:

	w, err := worker.NewWorker(&worker.WorkerConfig{
		Transform:   func(s string) string { return "Processed: " + s },
		JoinTimeout: time.Second,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	w.AddData("Test1")
	w.AddData("Test2")
	w.WakeUp()

	if err := w.WaitSettled(ctx); err != nil {
		log.Fatal(err)
	}
	results := w.GetData(2) // ["Processed: Test1", "Processed: Test2"]

# Metrics

Setting MetricsRegisterer and MetricsPrefix registers prometheus counters for
added, processed, dropped and failed items and for wake-ups, gauges for queue
depths and the awake flag, and a histogram of transform durations.
*/
package worker
