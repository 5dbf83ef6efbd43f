// Package dispatcher turns polled input into handler calls.
//
// The dispatcher runs synchronously inside the main loop. Once per frame it
// walks a keymap.Table in evaluation order and fires the handler of every
// binding whose combo is active, with each physical input firing at most
// one handler per frame.
//
// # Evaluation Order
//
// The order is rebuilt whenever the table's version changes:
//
//  1. Bindings that require a modifier come before plain ones, so Ctrl+S
//     consumes S before the plain S binding is tested.
//  2. Within each half, higher context priority goes first. The radar wins
//     the mouse wheel over gameplay while it is active.
//  3. Creation order breaks remaining ties.
//
// Unbound and hidden bindings never enter the order.
//
// # Per-Frame Pass
//
// When a frame runs:
//
//  1. Inputs of live always-active exclusive bindings are reserved
//  2. Each binding is skipped if it is debug-only while debug mode is off,
//     if its context is inactive, or if its input was already consumed
//  3. The combo's rule (pressed, down, released) is tested together with
//     the modifier; right-hand modifiers count as their left twin
//  4. On a hit the input is consumed and the handler invoked (with
//     optional panic recovery)
//  5. Fire hooks and metrics are updated
//
// After the pass an independent scan reports every pressed non-modifier
// key to AnyKeyHooks, whether bound or not.
//
// # Debug Mode
//
// Debug-only bindings consult a DebugFlags value. PlayerDebugFlags enables
// them only when every allocated player has asked for debug mode, with
// per-context switches on top.
//
// # Usage
//
//	d, err := dispatcher.New(table, dispatcher.DefaultConfig().WithMetrics())
//	if err != nil {
//	    return err
//	}
//	d.AddAnyKeyHook(dispatcher.AnyKeyFunc(func(mod, k key.Key) {
//	    scripts.KeyPressed(mod, k)
//	}))
//
//	for running {
//	    tracker.BeginFrame()
//	    pollEvents(tracker)
//	    d.Frame(tracker)
//	}
package dispatcher
