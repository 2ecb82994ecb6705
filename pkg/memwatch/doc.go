// Package memwatch shows live values of raw memory locations in a
// terminal panel next to a scrolling log.
//
// A host program creates a Watcher, calls Init to take over the
// terminal, points rows of the watch table at its variables and calls
// Refresh whenever it wants the panel redrawn:
//
//	w := memwatch.New()
//	if err := w.Init(); err != nil {
//		// terminal too small or not a terminal; w stays inert
//	}
//	defer w.End()
//
//	var hits uint32
//	w.Watch(unsafe.Pointer(&hits), 0, memwatch.UInt32)
//	w.WatchVar(1, &ratio) // tag inferred from *float64
//	for ... {
//		hits++
//		w.Refresh()
//		w.Logf("tick %d\n", hits)
//	}
//
// The watch table has one row per usable terminal line (rows − 4) and
// never grows. Out-of-range rows are ignored rather than reported, and
// every call on an uninitialized or ended Watcher is a no-op, so a
// failed Init cannot break the host.
//
// memwatch trusts its caller: watched addresses are read without any
// validation, and nothing is locked. Calls must be serialized by the
// host.
package memwatch
